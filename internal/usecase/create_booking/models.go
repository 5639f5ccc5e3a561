package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID      string       // Салон
	Actor         domain.Actor // Кто создает бронирование
	ServiceID     int64        // ID услуги
	StaffID       int64        // ID мастера
	StartAt       time.Time    // Начало
	CustomerEmail string       // Email клиента

	// Источник бронирования, по умолчанию domain.SourceSingle
	Source              domain.BookingSource
	GroupBookingID      *int64
	RecurringInstanceID *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Service *domain.Service
}
