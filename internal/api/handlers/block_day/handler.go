package block_day

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
	msgDuplicateBlock     = "этот день уже заблокирован"
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

// Handle POST /api/v1/blocks/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("POST /blocks/days - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	var req BlockDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(staffID)
	if err != nil {
		h.logger.Warn("POST /blocks/days - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /blocks/days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blocks.ErrDuplicateBlock):
			h.logger.Warn("POST /blocks/days - Duplicate block: date=%s", req.Date)
			handlers.RespondConflict(w, msgDuplicateBlock)

		default:
			h.logger.Error("POST /blocks/days - Failed to block day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks/days - Day blocked: date=%s, staff=%s", req.Date, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
