package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SubjectName) == "" {
		return fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}
	if len(req.SubjectName) > domain.MaxSubjectNameLength {
		return fmt.Errorf("%w: subject name is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !domain.IsAllowedDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration %d is not one of %v",
			ErrInvalidInput, req.DurationMinutes, domain.AllowedDurations)
	}

	if req.PartySize < 1 || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between 1 and %d",
			ErrInvalidInput, domain.MaxPartySize)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	return nil
}

// validateSlotFits проверяет, что интервал кандидата помещается в рабочее окно дня
func validateSlotFits(workWindow domain.TimeWindow, start types.TimeString, durationMinutes int) error {
	if start.IsBefore(workWindow.Start) {
		return fmt.Errorf("%w: start %s is before opening %s", ErrInvalidTimeSlot, start, workWindow.Start)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if end.IsAfter(workWindow.End) {
		return fmt.Errorf("%w: end %s is after closing %s", ErrInvalidTimeSlot, end, workWindow.End)
	}

	return nil
}

// hasDuplicateName проверяет наличие бронирования с тем же именем в пересекающемся
// или примыкающем интервале. Для дубликатов соприкосновение границ ТОЖЕ считается
// конфликтом: записи "впритык" на одно имя почти всегда двойное бронирование семьи.
func hasDuplicateName(name string, candStart, candEnd types.TimeString, bookings []*domain.Booking) bool {
	normalized := strings.TrimSpace(name)
	for _, b := range bookings {
		if strings.TrimSpace(b.SubjectName) != normalized {
			continue
		}
		if b.TouchesOrConflicts(candStart, candEnd) {
			return true
		}
	}
	return false
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним бронированием
// (полуоткрытые интервалы, соприкосновение границ пересечением не считается)
func overlapsAny(candStart, candEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.ConflictsWith(candStart, candEnd) {
			return true
		}
	}
	return false
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
