package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// resolveDaySchedule собирает эффективное расписание дня: глобальные настройки
// плюс переопределение обеда на конкретную дату, если оно задано
func resolveDaySchedule(config *domain.CalendarConfig, override *domain.LunchOverride, date time.Time) (domain.DaySchedule, error) {
	day := domain.DaySchedule{
		Date:                 date,
		WorkWindow:           config.WorkWindow,
		LunchDurationMinutes: config.LunchDurationMinutes,
		BufferMinutes:        config.BufferMinutes,
	}

	lunchStart := config.LunchStart
	if override != nil {
		lunchStart = override.LunchStart
		day.LunchDurationMinutes = override.LunchDurationMinutes
	}

	if day.LunchDurationMinutes > 0 {
		lunchEnd, err := lunchStart.AddMinutes(day.LunchDurationMinutes)
		if err != nil {
			return domain.DaySchedule{}, err
		}
		day.LunchWindow = domain.TimeWindow{Start: lunchStart, End: lunchEnd}
	}

	return day, nil
}

// generateFreeSlots генерирует все свободные слоты дня для запрошенной длительности.
//
// Обход дня: курсор идёт от начала работы с шагом (длительность + перерыв).
// Обеденное окно пропускается не более одного раза за день: если курсор попал
// в [обед.начало, обед.конец), он сдвигается на длительность обеда, и повторное
// попадание в окно уже не обрабатывается - это наблюдаемое поведение исходной
// системы при нестандартных комбинациях длительности и перерыва.
//
// Слоты выдаются строго по возрастанию времени начала; при неизменных входных
// данных результат детерминирован.
func generateFreeSlots(day domain.DaySchedule, durationMinutes int, bookings []*domain.Booking) []domain.CandidateSlot {
	slots := make([]domain.CandidateSlot, 0)

	// Последнее допустимое время начала; если длительность не помещается в
	// рабочее окно вообще - это не ошибка, а пустой результат
	lastStart, ok := day.LastBookableStart(durationMinutes)
	if !ok {
		return slots
	}

	cursor := day.WorkWindow.Start
	lunchConsumed := false

	for !cursor.IsAfter(lastStart) {
		// Одноразовый пропуск обеда
		if !lunchConsumed && day.LunchDurationMinutes > 0 && day.LunchWindow.Contains(cursor) {
			next, err := cursor.AddMinutes(day.LunchDurationMinutes)
			if err != nil {
				break
			}
			cursor = next
			lunchConsumed = true
			continue
		}

		candidateEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			break
		}

		if !overlapsAny(cursor, candidateEnd, bookings) {
			slots = append(slots, domain.CandidateSlot{
				StartTime:       cursor,
				EndTime:         candidateEnd,
				DurationMinutes: durationMinutes,
			})
		}

		next, err := cursor.AddMinutes(durationMinutes + day.BufferMinutes)
		if err != nil {
			break
		}
		cursor = next
	}

	return slots
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним бронированием.
// Полуоткрытые интервалы: соприкосновение границ пересечением не считается.
func overlapsAny(candStart, candEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.ConflictsWith(candStart, candEnd) {
			return true
		}
	}
	return false
}
