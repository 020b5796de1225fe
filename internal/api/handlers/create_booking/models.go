package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	createBooking "github.com/m04kA/SMC-RidingSchoolService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SubjectName     string  `json:"subjectName"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	PartySize       int     `json:"partySize"`
	Repeat          bool    `json:"repeat"`
	Note            *string `json:"note,omitempty"`
}

// BookingResponse HTTP модель созданного бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	SubjectName     string  `json:"subjectName"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	PartySize       int     `json:"partySize"`
	IsRecurring     bool    `json:"isRecurring"`
	RepeatGroupID   string  `json:"repeatGroupId,omitempty"`
	Note            *string `json:"note,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// CreateBookingResponse HTTP модель ответа на создание бронирования.
// Для еженедельной серии содержит все созданные занятия.
type CreateBookingResponse struct {
	RepeatGroupID string            `json:"repeatGroupId,omitempty"`
	Bookings      []BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SubjectName:     r.SubjectName,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		Repeat:          r.Repeat,
		Note:            r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingResponse, len(resp.Bookings))
	for i, b := range resp.Bookings {
		bookings[i] = BookingResponse{
			ID:              b.ID,
			Date:            b.Date.Format(domain.DateFormat),
			SubjectName:     b.SubjectName,
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			PartySize:       b.PartySize,
			IsRecurring:     b.IsRecurring,
			RepeatGroupID:   b.RepeatGroupID,
			Note:            b.Note,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		}
	}

	return &CreateBookingResponse{
		RepeatGroupID: resp.RepeatGroupID,
		Bookings:      bookings,
	}
}
