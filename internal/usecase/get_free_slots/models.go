package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes int       // Желаемая длительность занятия
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	DurationMinutes int
	Blocked         bool   // Дата закрыта для бронирований
	Slots           []Slot // Слоты в порядке возрастания времени начала
}

// Slot модель свободного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "09:00")
	EndTime         types.TimeString // Время конца слота
	DurationMinutes int
}
