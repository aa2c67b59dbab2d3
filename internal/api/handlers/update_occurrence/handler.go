package update_occurrence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	updateOccurrence "github.com/m04kA/SMC-ArenaService/internal/usecase/update_occurrence"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotASeries         = "бронирование не входит в серию"
	msgCannotUpdate       = "бронирование нельзя изменить в текущем статусе"
	msgSlotConflict       = "новое время пересекается с другим бронированием или блокировкой"
	msgInvalidInput       = "некорректные параметры изменения"
)

type Handler struct {
	useCase UpdateOccurrenceUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOccurrenceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateOccurrenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateOccurrence.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateOccurrence.ErrNotASeries):
			h.logger.Warn("PATCH /bookings/{id} - Not a series: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotASeries)

		case errors.Is(err, updateOccurrence.ErrCannotUpdate):
			h.logger.Warn("PATCH /bookings/{id} - Cannot update: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, updateOccurrence.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id} - Slot conflict: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, updateOccurrence.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated: booking_id=%d, updated=%d, skipped=%d",
		bookingID, len(result.Updated), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result))
}
