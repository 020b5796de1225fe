package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-RidingSchoolService/internal/usecase/get_free_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность занятия, допустимы 30, 60 и 90 минут"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&durationMinutes=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid duration %q: %v", durationStr, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getFreeSlots.Request{
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidDuration):
			h.logger.Warn("GET /slots - Invalid duration: %d", duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /slots - Failed to get free slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Returned %d slot(s) for date=%s, duration=%d",
		len(result.Slots), dateStr, duration)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
