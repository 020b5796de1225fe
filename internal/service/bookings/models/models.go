package models

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
)

// Request модели

// MoveBookingRequest запрос на перенос бронирования на новое время
type MoveBookingRequest struct {
	Actor        string `json:"actor"`
	NewStartTime string `json:"newStartTime"` // "HH:MM", из сетки переноса
}

// UpdateAssignmentsRequest запрос на изменение назначенных лошадей и заметки
type UpdateAssignmentsRequest struct {
	Actor  string   `json:"actor"`
	Horses []string `json:"horses"`
	Note   *string  `json:"note,omitempty"`
}

// StopRecurrenceRequest запрос на остановку еженедельной серии с даты
type StopRecurrenceRequest struct {
	Actor         string    `json:"actor"`
	RepeatGroupID string    `json:"repeatGroupId"`
	CutoffDate    time.Time `json:"cutoffDate"` // Удаляются занятия с датой >= cutoffDate
}

// Response модели

// MoveBookingResponse результат переноса
type MoveBookingResponse struct {
	Booking         BookingResponse `json:"booking"`
	ConflictWarning bool            `json:"conflictWarning"` // Перенос попал на занятый интервал
}

// StopRecurrenceResponse результат остановки серии
type StopRecurrenceResponse struct {
	RemovedCount int64 `json:"removedCount"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64    `json:"id"`
	Date            string   `json:"date"`      // "2025-10-15"
	SubjectName     string   `json:"subjectName"`
	Horses          []string `json:"horses"`
	StartTime       string   `json:"startTime"` // "10:00"
	DurationMinutes int      `json:"durationMinutes"`
	PartySize       int      `json:"partySize"`
	IsRecurring     bool     `json:"isRecurring"`
	RepeatGroupID   string   `json:"repeatGroupId,omitempty"`
	Note            *string  `json:"note,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	horses := b.Horses
	if horses == nil {
		horses = []string{}
	}

	return &BookingResponse{
		ID:              b.ID,
		Date:            b.Date.Format(domain.DateFormat),
		SubjectName:     b.SubjectName,
		Horses:          horses,
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		PartySize:       b.PartySize,
		IsRecurring:     b.IsRecurring,
		RepeatGroupID:   b.RepeatGroupID,
		Note:            b.Note,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
