package get_week_bookings

import (
	"context"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

type BookingsService interface {
	GetWeekBookings(ctx context.Context, year, isoWeek int) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
