package move_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidMoveTime    = "новое время вне сетки переноса или не помещается в рабочие часы"
	msgMoveConflict       = "новое время пересекается с другим бронированием"
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

// Handle PATCH /api/v1/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid booking ID %q: %v", vars["bookingId"], err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Move(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Booking not found: id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidMoveTime):
			h.logger.Warn("PATCH /bookings/{id}/move - Invalid move time: id=%d, time=%s",
				bookingID, req.NewStartTime)
			handlers.RespondBadRequest(w, msgInvalidMoveTime)

		case errors.Is(err, bookingsService.ErrMoveConflict):
			h.logger.Warn("PATCH /bookings/{id}/move - Move conflict: id=%d, time=%s",
				bookingID, req.NewStartTime)
			handlers.RespondError(w, http.StatusConflict, msgMoveConflict)

		default:
			h.logger.Error("PATCH /bookings/{id}/move - Failed to move booking: id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/move - Booking moved: id=%d, time=%s, conflict_warning=%v",
		bookingID, req.NewStartTime, result.ConflictWarning)
	handlers.RespondJSON(w, http.StatusOK, result)
}
