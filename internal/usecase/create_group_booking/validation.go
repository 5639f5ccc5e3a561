package create_group_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// validateRequest валидирует шаблон группы
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.MaxParticipants < domain.MinGroupParticipants || req.MaxParticipants > domain.MaxGroupParticipants {
		return fmt.Errorf("%w: maxParticipants must be between %d and %d",
			ErrInvalidInput, domain.MinGroupParticipants, domain.MaxGroupParticipants)
	}

	if req.PricePerPersonCents < 0 {
		return fmt.Errorf("%w: pricePerPerson must not be negative", ErrInvalidInput)
	}

	if !validate.Email(req.PrimaryEmail) {
		return fmt.Errorf("%w: primaryEmail is not a valid email", ErrInvalidInput)
	}

	return nil
}

// validParticipants оставляет участников с непустыми именем и email
// Повторный email (после нормализации) пропускается, учитывается первый участник
func validParticipants(input []ParticipantInput) []ParticipantInput {
	result := make([]ParticipantInput, 0, len(input))
	seen := make(map[string]struct{}, len(input))
	for _, p := range input {
		name := strings.TrimSpace(p.Name)
		email := domain.NormalizeEmail(p.Email)
		if name == "" || email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		result = append(result, ParticipantInput{Name: name, Email: email, Phone: p.Phone})
	}
	return result
}
