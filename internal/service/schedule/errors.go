package schedule

import "errors"

var (
	// ErrInvalidConfig возвращается, когда новые настройки нарушают инварианты календаря
	ErrInvalidConfig = errors.New("invalid calendar configuration")

	// ErrOverrideNotFound возвращается, когда переопределение обеда на дату не найдено
	ErrOverrideNotFound = errors.New("lunch override not found")

	// ErrBlockedDateNotFound возвращается, когда блокировка даты не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
