package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ArenaService/internal/usecase/check_availability"
)

const (
	msgInvalidCourtID  = "некорректный ID корта"
	msgMissingStartAt  = "момент начала обязателен"
	msgMissingDuration = "длительность обязательна"
	msgInvalidParams   = "некорректные параметры запроса"
	msgCourtNotFound   = "корт не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/availability
// Query params: startAt (required, RFC3339), durationMinutes (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	startAtStr := r.URL.Query().Get("startAt")
	if startAtStr == "" {
		h.logger.Warn("GET /courts/{id}/availability - Missing startAt")
		handlers.RespondBadRequest(w, msgMissingStartAt)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /courts/{id}/availability - Missing durationMinutes")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(courtID, startAtStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/availability - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /courts/{id}/availability - Failed to check availability: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/availability - Availability checked: court_id=%d, available=%t",
		courtID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
