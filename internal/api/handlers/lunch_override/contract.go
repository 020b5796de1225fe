package lunch_override

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetLunchOverride(ctx context.Context, req *models.SetLunchOverrideRequest) error
	DeleteLunchOverride(ctx context.Context, date time.Time, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
