package blocked_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, from, to time.Time) (*models.BlockedDateListResponse, error)
	BlockDate(ctx context.Context, req *models.BlockDateRequest) error
	UnblockDate(ctx context.Context, date time.Time, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
