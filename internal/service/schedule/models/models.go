package models

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек календаря
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	Actor                      string  `json:"actor"`
	WorkStart                  *string `json:"workStart,omitempty"`            // "09:00"
	WorkEnd                    *string `json:"workEnd,omitempty"`              // "20:30"
	LunchStart                 *string `json:"lunchStart,omitempty"`           // "12:00"
	LunchDurationMinutes       *int    `json:"lunchDurationMinutes,omitempty"` // 0 = без обеда
	BufferMinutes              *int    `json:"bufferMinutes,omitempty"`
	RepeatHorizonWeeks         *int    `json:"repeatHorizonWeeks,omitempty"`
	AllowAdminOverrideConflict *bool   `json:"allowAdminOverrideConflict,omitempty"`
}

// SetLunchOverrideRequest запрос на переопределение обеда на дату
type SetLunchOverrideRequest struct {
	Actor                string    `json:"actor"`
	Date                 time.Time `json:"date"`
	LunchStart           string    `json:"lunchStart"`
	LunchDurationMinutes int       `json:"lunchDurationMinutes"`
}

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	Actor  string    `json:"actor"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason,omitempty"`
}

// Response модели

// ConfigResponse ответ с настройками календаря
type ConfigResponse struct {
	WorkStart                  string    `json:"workStart"`
	WorkEnd                    string    `json:"workEnd"`
	LunchStart                 string    `json:"lunchStart"`
	LunchDurationMinutes       int       `json:"lunchDurationMinutes"`
	BufferMinutes              int       `json:"bufferMinutes"`
	RepeatHorizonWeeks         int       `json:"repeatHorizonWeeks"`
	AllowAdminOverrideConflict bool      `json:"allowAdminOverrideConflict"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

// BlockedDateResponse ответ с заблокированной датой
type BlockedDateResponse struct {
	Date   string `json:"date"` // "2025-10-15"
	Reason string `json:"reason,omitempty"`
}

// BlockedDateListResponse ответ со списком заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.CalendarConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		WorkStart:                  c.WorkWindow.Start.String(),
		WorkEnd:                    c.WorkWindow.End.String(),
		LunchStart:                 c.LunchStart.String(),
		LunchDurationMinutes:       c.LunchDurationMinutes,
		BufferMinutes:              c.BufferMinutes,
		RepeatHorizonWeeks:         c.RepeatHorizonWeeks,
		AllowAdminOverrideConflict: c.AllowAdminOverrideConflict,
		UpdatedAt:                  c.UpdatedAt,
	}
}

// FromDomainBlockedDates конвертирует список domain моделей в DTO
func FromDomainBlockedDates(blocked []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(blocked)),
	}

	for _, bd := range blocked {
		resp.BlockedDates = append(resp.BlockedDates, BlockedDateResponse{
			Date:   bd.Date.Format(domain.DateFormat),
			Reason: bd.Reason,
		})
	}

	return resp
}

// ApplyToConfig применяет обновления к существующим настройкам.
// Обновляются только непустые (not nil) поля из request.
// Строковые времена валидируются на стороне сервиса до вызова.
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.CalendarConfig) {
	if r.WorkStart != nil {
		config.WorkWindow.Start = types.TimeString(*r.WorkStart)
	}
	if r.WorkEnd != nil {
		config.WorkWindow.End = types.TimeString(*r.WorkEnd)
	}
	if r.LunchStart != nil {
		config.LunchStart = types.TimeString(*r.LunchStart)
	}
	if r.LunchDurationMinutes != nil {
		config.LunchDurationMinutes = *r.LunchDurationMinutes
	}
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.RepeatHorizonWeeks != nil {
		config.RepeatHorizonWeeks = *r.RepeatHorizonWeeks
	}
	if r.AllowAdminOverrideConflict != nil {
		config.AllowAdminOverrideConflict = *r.AllowAdminOverrideConflict
	}
}
