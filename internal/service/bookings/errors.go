package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSeriesNotFound возвращается, когда еженедельная серия не найдена
	ErrSeriesNotFound = errors.New("recurring series not found")

	// ErrMoveConflict возвращается, когда перенос попадает на занятый интервал,
	// а переопределение конфликтов админом выключено настройкой
	ErrMoveConflict = errors.New("move destination conflicts with an existing booking")

	// ErrInvalidMoveTime возвращается, когда новое время вне сетки переноса
	// или не помещается в рабочее окно
	ErrInvalidMoveTime = errors.New("invalid move start time")

	// ErrUnknownHorse возвращается при попытке назначить лошадь не из списка школы
	ErrUnknownHorse = errors.New("horse is not in the roster")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
