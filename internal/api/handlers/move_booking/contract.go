package move_booking

import (
	"context"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

type BookingsService interface {
	Move(ctx context.Context, bookingID int64, req *models.MoveBookingRequest) (*models.MoveBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
