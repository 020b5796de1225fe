package stop_recurrence

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCutoffDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSeriesNotFound     = "еженедельная серия не найдена"
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

// Handle POST /api/v1/recurrences/{repeatGroupId}/stop
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	repeatGroupID := vars["repeatGroupId"]

	var req StopRecurrenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /recurrences/{id}/stop - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(repeatGroupID)
	if err != nil {
		h.logger.Warn("POST /recurrences/{id}/stop - Invalid cutoff date %q: %v", req.CutoffDate, err)
		handlers.RespondBadRequest(w, msgInvalidCutoffDate)
		return
	}

	result, err := h.service.StopRecurrenceFrom(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrSeriesNotFound):
			h.logger.Warn("POST /recurrences/{id}/stop - Series not found: group=%s", repeatGroupID)
			handlers.RespondNotFound(w, msgSeriesNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /recurrences/{id}/stop - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /recurrences/{id}/stop - Failed to stop series: group=%s, error=%v",
				repeatGroupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurrences/{id}/stop - Removed %d occurrence(s): group=%s",
		result.RemovedCount, repeatGroupID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
