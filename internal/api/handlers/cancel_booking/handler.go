package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingIdentity  = "не удалось определить пользователя"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId} и DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &cancelBooking.Request{
		TenantID:  tenantID,
		Actor:     actor,
		BookingID: bookingID,
	})
	if err != nil {
		status, kind := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("DELETE /bookings/{id} - Cancellation rejected (%s): booking_id=%d, actor=%s", kind, bookingID, actor.Email)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled: booking_id=%d, role=%s", bookingID, actor.Role)
	handlers.RespondNoContent(w)
}
