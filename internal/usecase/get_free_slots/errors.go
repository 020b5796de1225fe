package get_free_slots

import "errors"

var (
	// ErrInvalidDuration возвращается, когда длительность не входит в список допустимых
	ErrInvalidDuration = errors.New("get_free_slots: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_slots: internal error")
)
