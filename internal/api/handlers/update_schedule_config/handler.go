package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "новые настройки нарушают инварианты календаря"
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

// Handle PUT /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateConfig(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidConfig):
			h.logger.Warn("PUT /schedule/config - Invalid config: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/config - Config updated by %s", req.Actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
