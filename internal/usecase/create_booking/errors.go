package create_booking

import "errors"

var (
	// ErrDuplicateName возвращается, когда на ту же дату уже есть пересекающееся
	// или примыкающее бронирование с тем же именем
	ErrDuplicateName = errors.New("create_booking: duplicate booking for this name")

	// ErrSlotTaken возвращается, когда выбранный слот занят к моменту коммита
	// (другой клиент успел забронировать между показом слотов и отправкой формы)
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrDateBlocked возвращается, когда дата закрыта для бронирований
	ErrDateBlocked = errors.New("create_booking: date is blocked for bookings")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время начала не помещается в рабочее окно
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
