package create_series

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/api/middleware"
	createSeries "github.com/m04kA/SMC-ArenaService/internal/usecase/create_series"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgCourtInactive      = "корт выключен из бронирования"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateSeriesUseCase
	logger  Logger
}

func NewHandler(useCase CreateSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/series
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Оператор, от имени которого создаётся бронирование (через middleware Auth)
	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/series - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/series - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/series - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSeries.ErrCourtNotFound):
			h.logger.Warn("POST /bookings/series - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createSeries.ErrCourtInactive):
			h.logger.Warn("POST /bookings/series - Court inactive: court_id=%d", req.CourtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtInactive)

		case errors.Is(err, createSeries.ErrInvalidInput):
			h.logger.Warn("POST /bookings/series - Invalid input: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/series - Failed to create series: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/series - Series created: court_id=%d, operator_id=%d, created=%d, skipped=%d",
		req.CourtID, operatorID, len(result.Created), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResult(result))
}
