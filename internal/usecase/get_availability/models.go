package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Request модель запроса свободных слотов
type Request struct {
	TenantID  string    // Салон
	ServiceID int64     // ID услуги
	StaffID   *int64    // ID мастера (опционально, иначе все активные мастера)
	Date      time.Time // Дата (время игнорируется)
}

// Response модель ответа со свободными слотами
type Response struct {
	Date      time.Time     // Начало дня в рабочей таймзоне
	ServiceID int64         // ID услуги
	Slots     []domain.Slot // Слоты, упорядоченные по мастеру и времени
}
