package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SubjectName     string           // Имя ребёнка (или детей)
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала выбранного слота
	DurationMinutes int              // Длительность занятия
	PartySize       int              // Количество участников
	Repeat          bool             // Еженедельное повторение
	Note            *string          // Заметка (опционально)
}

// Response модель ответа с созданными бронированиями.
// Для еженедельной серии содержит все созданные занятия.
type Response struct {
	RepeatGroupID string    // Пустой для разового бронирования
	Bookings      []Booking // В порядке возрастания дат
}

// Booking созданное бронирование
type Booking struct {
	ID              int64
	Date            time.Time
	SubjectName     string
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	IsRecurring     bool
	RepeatGroupID   string
	Note            *string
	CreatedAt       time.Time
}
