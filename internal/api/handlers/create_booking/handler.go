package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-QueueService/internal/api/handlers"
	"github.com/m04kA/Clinic-QueueService/internal/api/middleware"
	admitBooking "github.com/m04kA/Clinic-QueueService/internal/usecase/admit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotNotFound       = "временной слот не найден"
	msgTooLateToBook      = "запись возможна не позднее чем за 2 часа до начала приема"
	msgClinicClosed       = "клиника не работает в выбранный день"
	msgDayBlocked         = "выбранный день недоступен для записи"
	msgSlotBlocked        = "выбранный слот недоступен для записи"
	msgDuplicateBooking   = "на эту дату уже есть активная запись"
	msgSlotFull           = "все места в выбранном слоте заняты"
	msgEmergencyStaffOnly = "экстренная запись доступна только персоналу"
)

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Экстренная запись допустима только с заголовком сотрудника
	if req.IsEmergency {
		if _, ok := middleware.GetStaffID(r.Context()); !ok {
			h.logger.Warn("POST /bookings - Emergency booking without staff header: phone=%s", req.Phone)
			handlers.RespondForbidden(w, msgEmergencyStaffOnly)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest(req.IsEmergency)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, admitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, admitBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot=%q", req.SlotLabel)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, admitBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, slot=%q", req.Date, req.SlotLabel)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, admitBooking.ErrClinicClosed):
			h.logger.Warn("POST /bookings - Clinic closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClinicClosed)

		case errors.Is(err, admitBooking.ErrDayBlocked):
			h.logger.Warn("POST /bookings - Day blocked: date=%s", req.Date)
			handlers.RespondConflict(w, msgDayBlocked)

		case errors.Is(err, admitBooking.ErrSlotBlocked):
			h.logger.Warn("POST /bookings - Slot blocked: date=%s, slot=%q", req.Date, req.SlotLabel)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, admitBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: phone=%s, date=%s", req.Phone, req.Date)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, admitBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%q", req.Date, req.SlotLabel)
			handlers.RespondConflict(w, msgSlotFull)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: phone=%s, error=%v", req.Phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, date=%s, slot=%q, emergency=%t",
		result.ID, req.Date, req.SlotLabel, result.IsEmergency)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
