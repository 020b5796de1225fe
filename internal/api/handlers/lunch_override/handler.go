package lunch_override

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	scheduleService "github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOverrideNotFound   = "переопределение обеда на эту дату не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSet PUT /api/v1/schedule/lunch-overrides/{date}
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req SetLunchOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/lunch-overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(vars["date"])
	if err != nil {
		h.logger.Warn("PUT /schedule/lunch-overrides/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.SetLunchOverride(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/lunch-overrides/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/lunch-overrides/{date} - Failed to set override: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/lunch-overrides/{date} - Override set: date=%s, lunch=%s+%dm",
		vars["date"], req.LunchStart, req.LunchDurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// HandleDelete DELETE /api/v1/schedule/lunch-overrides/{date}?actor=admin
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /schedule/lunch-overrides/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actor := r.URL.Query().Get("actor")
	if actor == "" {
		actor = "admin"
	}

	if err := h.service.DeleteLunchOverride(r.Context(), date, actor); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrOverrideNotFound):
			h.logger.Warn("DELETE /schedule/lunch-overrides/{date} - Not found: %s", vars["date"])
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("DELETE /schedule/lunch-overrides/{date} - Failed to delete override: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/lunch-overrides/{date} - Override deleted: %s", vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
