package cancel_booking

import "github.com/m04kA/SMC-SalonScheduler/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	TenantID  string       // Салон
	Actor     domain.Actor // Кто отменяет
	BookingID int64        // ID бронирования
	WithGroup bool         // Отмена опорного бронирования вместе с группой
}

// Response модель ответа с отмененным бронированием
type Response struct {
	Booking *domain.Booking
}
