package apply_delay

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-QueueService/internal/api/handlers"
	"github.com/m04kA/Clinic-QueueService/internal/service/queue"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidDelay       = "задержка должна быть положительным числом минут"
	msgNotFound           = "запись не найдена"
)

type Handler struct {
	service QueueService
	logger  Logger
}

func NewHandler(service QueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/delay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/delay - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ApplyDelayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/delay - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ApplyDelay(r.Context(), bookingID, req.Minutes)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrInvalidDelay):
			h.logger.Warn("PATCH /bookings/{id}/delay - Invalid delay=%d: booking_id=%d", req.Minutes, bookingID)
			handlers.RespondBadRequest(w, msgInvalidDelay)

		case errors.Is(err, queue.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/delay - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id}/delay - Failed to apply delay: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/delay - Delay applied: booking_id=%d, minutes=%d", bookingID, req.Minutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
