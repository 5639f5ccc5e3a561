package create_recurring_series

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Request шаблон регулярной серии
type Request struct {
	TenantID       string
	Actor          domain.Actor
	ServiceID      int64
	StaffID        int64
	CustomerEmail  string
	StartDate      time.Time        // Дата первого вхождения
	Frequency      domain.Frequency // weekly | biweekly | monthly
	TimeSlot       string           // HH:MM
	EndDate        *time.Time       // Включительно
	MaxOccurrences *int
}

// Response серия и сгенерированные заготовки
type Response struct {
	Series    *domain.RecurringSeries
	Instances []*domain.RecurringInstance
}
