package get_company_bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to принимаются в RFC 3339 или как дата YYYY-MM-DD (полночь в рабочей таймзоне).
func ToServiceRequest(staffIDStr, statusStr, fromStr, toStr string, loc *time.Location) (*models.ListAdminRequest, error) {
	req := &models.ListAdminRequest{}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if statusStr != "" {
		req.Status = ptr.Ptr(strings.ToUpper(statusStr))
	}

	if fromStr != "" {
		from, err := parseInstant(fromStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := parseInstant(toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	return req, nil
}

func parseInstant(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return calendar.ParseDate(raw, loc)
}
