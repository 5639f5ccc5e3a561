package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonScheduler/internal/usecase/get_availability"
)

// AvailableSlot свободный слот мастера
type AvailableSlot struct {
	StaffID int64     `json:"staffId"`
	Start   time.Time `json:"start"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) []AvailableSlot {
	slots := make([]AvailableSlot, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, fromDomainSlot(slot))
	}
	return slots
}

func fromDomainSlot(slot domain.Slot) AvailableSlot {
	return AvailableSlot{
		StaffID: slot.StaffID,
		Start:   slot.Start.UTC(),
	}
}
