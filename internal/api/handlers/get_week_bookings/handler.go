package get_week_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings"
)

const (
	msgInvalidWeek = "некорректный номер года или недели"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/weeks/{year}/{week}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /weeks - Invalid year %q: %v", vars["year"], err)
		handlers.RespondBadRequest(w, msgInvalidWeek)
		return
	}

	week, err := strconv.Atoi(vars["week"])
	if err != nil {
		h.logger.Warn("GET /weeks - Invalid week %q: %v", vars["week"], err)
		handlers.RespondBadRequest(w, msgInvalidWeek)
		return
	}

	result, err := h.service.GetWeekBookings(r.Context(), year, week)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /weeks - Invalid input: year=%d, week=%d", year, week)
			handlers.RespondBadRequest(w, msgInvalidWeek)

		default:
			h.logger.Error("GET /weeks - Failed to get bookings: year=%d, week=%d, error=%v", year, week, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
