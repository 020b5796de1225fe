package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда настройки календаря не найдены
	ErrConfigNotFound = errors.New("schedule.repository: calendar config not found")

	// ErrOverrideNotFound возвращается, когда переопределение обеда на дату не найдено
	ErrOverrideNotFound = errors.New("schedule.repository: lunch override not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
