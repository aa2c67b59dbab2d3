package price_divergence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	evaluatePriceDivergence "github.com/m04kA/SMC-ArenaService/internal/usecase/evaluate_price_divergence"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	useCase EvaluatePriceDivergenceUseCase
	logger  Logger
}

func NewHandler(useCase EvaluatePriceDivergenceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/price-divergence
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/price-divergence - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	report, err := h.useCase.Execute(r.Context(), &evaluatePriceDivergence.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, evaluatePriceDivergence.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/price-divergence - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, evaluatePriceDivergence.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/price-divergence - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/{id}/price-divergence - Failed to evaluate: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/price-divergence - Evaluated: booking_id=%d, divergence=%t",
		bookingID, report.HasDivergence)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseReport(report))
}
