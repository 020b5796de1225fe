package get_free_slots

import (
	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-RidingSchoolService/internal/usecase/get_free_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// FreeSlotsResponse HTTP модель ответа со свободными слотами
type FreeSlotsResponse struct {
	Date            string         `json:"date"` // "2025-10-15"
	DurationMinutes int            `json:"durationMinutes"`
	Blocked         bool           `json:"blocked"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &FreeSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Blocked:         resp.Blocked,
		Slots:           slots,
	}
}
