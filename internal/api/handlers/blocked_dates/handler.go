package blocked_dates

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
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod       = "некорректный период, ожидаются параметры from и to в формате YYYY-MM-DD"
	msgBlockedDateNotFound = "блокировка даты не найдена"
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

// HandleList GET /api/v1/schedule/blocked-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /schedule/blocked-dates - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /schedule/blocked-dates - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListBlockedDates(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("GET /schedule/blocked-dates - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /schedule/blocked-dates - Failed to list blocked dates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleBlock POST /api/v1/schedule/blocked-dates
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /schedule/blocked-dates - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.BlockDate(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /schedule/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /schedule/blocked-dates - Failed to block date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/blocked-dates - Date blocked: %s", req.Date)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}

// HandleUnblock DELETE /api/v1/schedule/blocked-dates/{date}?actor=admin
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actor := r.URL.Query().Get("actor")
	if actor == "" {
		actor = "admin"
	}

	if err := h.service.UnblockDate(r.Context(), date, actor); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /schedule/blocked-dates/{date} - Not found: %s", vars["date"])
			handlers.RespondNotFound(w, msgBlockedDateNotFound)

		default:
			h.logger.Error("DELETE /schedule/blocked-dates/{date} - Failed to unblock date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/blocked-dates/{date} - Date unblocked: %s", vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
