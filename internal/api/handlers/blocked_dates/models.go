package blocked_dates

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
)

// BlockDateRequest HTTP request model
type BlockDateRequest struct {
	Actor  string `json:"actor"`
	Date   string `json:"date"` // "2025-10-15"
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockDateRequest) ToServiceRequest() (*models.BlockDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.BlockDateRequest{
		Actor:  r.Actor,
		Date:   date,
		Reason: r.Reason,
	}, nil
}
