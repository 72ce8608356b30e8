package company

import "time"

// Company entity
type Company struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday - company-scoped non-working day used by the leave working-day
// calculation and by payroll proration.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
