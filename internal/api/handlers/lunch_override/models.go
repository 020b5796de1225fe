package lunch_override

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
)

// SetLunchOverrideRequest HTTP request model
type SetLunchOverrideRequest struct {
	Actor                string `json:"actor"`
	LunchStart           string `json:"lunchStart"`           // "13:00"
	LunchDurationMinutes int    `json:"lunchDurationMinutes"` // 0 = обеда нет в этот день
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetLunchOverrideRequest) ToServiceRequest(dateStr string) (*models.SetLunchOverrideRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &models.SetLunchOverrideRequest{
		Actor:                r.Actor,
		Date:                 date,
		LunchStart:           r.LunchStart,
		LunchDurationMinutes: r.LunchDurationMinutes,
	}, nil
}
