package create_booking

import "time"

// expandRecurringDates разворачивает еженедельную серию из запрошенной даты.
//
// horizonWeeks = 0 воспроизводит историческое поведение: занятия добавляются
// с шагом 7 дней, пока дата остаётся в календарном месяце исходного запроса.
// horizonWeeks > 0 задаёт явный горизонт: всего horizonWeeks занятий.
func expandRecurringDates(start time.Time, horizonWeeks int) []time.Time {
	dates := []time.Time{start}

	if horizonWeeks > 0 {
		for i := 1; i < horizonWeeks; i++ {
			dates = append(dates, start.AddDate(0, 0, 7*i))
		}
		return dates
	}

	next := start.AddDate(0, 0, 7)
	for next.Month() == start.Month() && next.Year() == start.Year() {
		dates = append(dates, next)
		next = next.AddDate(0, 0, 7)
	}
	return dates
}
