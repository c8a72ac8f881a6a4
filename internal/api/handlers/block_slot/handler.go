package block_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-QueueService/internal/api/handlers"
	"github.com/m04kA/Clinic-QueueService/internal/api/middleware"
	"github.com/m04kA/Clinic-QueueService/internal/service/blocks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные блокировки"
	msgSlotNotFound       = "временной слот не найден"
	msgDuplicateBlock     = "этот слот уже заблокирован на выбранную дату"
	msgMissingStaffID     = "отсутствует ID сотрудника"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocks/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("POST /blocks/slots - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(staffID)
	if err != nil {
		h.logger.Warn("POST /blocks/slots - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /blocks/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blocks.ErrSlotNotFound):
			h.logger.Warn("POST /blocks/slots - Slot not found: slot=%q", req.SlotLabel)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, blocks.ErrDuplicateBlock):
			h.logger.Warn("POST /blocks/slots - Duplicate block: date=%s, slot=%q", req.Date, req.SlotLabel)
			handlers.RespondConflict(w, msgDuplicateBlock)

		default:
			h.logger.Error("POST /blocks/slots - Failed to block slot: date=%s, slot=%q, error=%v",
				req.Date, req.SlotLabel, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks/slots - Slot blocked: date=%s, slot=%q, staff=%s", req.Date, req.SlotLabel, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
