package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
)

// countWorkingDays counts the dates in [start, end] that are neither weekend
// days nor company holidays. The request's day count is always recomputed
// here, never trusted from the caller.
func countWorkingDays(ctx context.Context, calendar company.HolidayCalendar, companyID string, start, end time.Time) (int, error) {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		holiday, err := calendar.IsHoliday(ctx, companyID, d)
		if err != nil {
			return 0, fmt.Errorf("failed to check holiday calendar: %w", err)
		}
		if holiday {
			continue
		}
		days++
	}
	return days, nil
}
