package get_court_tariffs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/tariffs"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidParams  = "некорректные параметры запроса"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	service TariffService
	logger  Logger
}

func NewHandler(service TariffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/tariffs
// Query params: includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/tariffs - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	serviceReq, err := ToServiceRequest(courtID, r.URL.Query().Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/tariffs - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCourtTariffs(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, tariffs.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/tariffs - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, tariffs.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/tariffs - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /courts/{id}/tariffs - Failed to get tariffs: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/tariffs - Tariffs retrieved: court_id=%d, count=%d",
		courtID, len(result.Bands))
	handlers.RespondJSON(w, http.StatusOK, result)
}
