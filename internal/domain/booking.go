package domain

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Booking represents a riding lesson reservation in the system
type Booking struct {
	ID              int64
	Date            time.Time
	SubjectName     string // Имя ребёнка (или детей), на которое сделана запись
	Horses          []string
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	IsRecurring     bool
	RepeatGroupID   string // Общий ID для всех занятий еженедельной серии, пустой для разовых
	Note            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsSeriesMember returns true if the booking belongs to a weekly series
func (b *Booking) IsSeriesMember() bool {
	return b.RepeatGroupID != ""
}

// ConflictsWith reports whether the booking overlaps the half-open candidate
// interval [candStart, candEnd). Touching endpoints are not a conflict.
func (b *Booking) ConflictsWith(candStart, candEnd types.TimeString) bool {
	end, err := b.EndTime()
	if err != nil {
		// Malformed rows are rejected at the storage boundary; treat as no conflict here
		return false
	}
	return b.StartTime.IsBefore(candEnd) && candStart.IsBefore(end)
}

// TouchesOrConflicts reports whether the booking overlaps or exactly touches
// the candidate interval. Used only for the duplicate-name check, where
// back-to-back bookings under the same name count as duplicates.
func (b *Booking) TouchesOrConflicts(candStart, candEnd types.TimeString) bool {
	end, err := b.EndTime()
	if err != nil {
		return false
	}
	return !end.IsBefore(candStart) && !candEnd.IsBefore(b.StartTime)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
	Subject   *string    // Фильтр по имени (опционально)
}
