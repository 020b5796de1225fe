package stop_recurrence

import (
	"context"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

type BookingsService interface {
	StopRecurrenceFrom(ctx context.Context, req *models.StopRecurrenceRequest) (*models.StopRecurrenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
