package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// BanRequest запрос на блокировку клиента
type BanRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// BanResponse блокировка клиента
type BanResponse struct {
	Email     string    `json:"email"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainBan конвертирует блокировку
func FromDomainBan(b *domain.CustomerBan) *BanResponse {
	return &BanResponse{
		Email:     b.Email,
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.UTC(),
	}
}

// FromDomainBanList конвертирует список блокировок
func FromDomainBanList(bans []*domain.CustomerBan) []*BanResponse {
	result := make([]*BanResponse, 0, len(bans))
	for _, b := range bans {
		result = append(result, FromDomainBan(b))
	}
	return result
}
