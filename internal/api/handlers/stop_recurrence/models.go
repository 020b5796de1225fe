package stop_recurrence

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

// StopRecurrenceRequest HTTP request model
type StopRecurrenceRequest struct {
	Actor      string `json:"actor"`
	CutoffDate string `json:"cutoffDate"` // "2025-10-15", удаляются занятия с этой даты включительно
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *StopRecurrenceRequest) ToServiceRequest(repeatGroupID string) (*models.StopRecurrenceRequest, error) {
	cutoff, err := time.Parse(domain.DateFormat, r.CutoffDate)
	if err != nil {
		return nil, err
	}

	return &models.StopRecurrenceRequest{
		Actor:         r.Actor,
		RepeatGroupID: repeatGroupID,
		CutoffDate:    cutoff,
	}, nil
}
