package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum carried in JWT claims
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Employee entity. ManagerID is a weak back-reference, never an ownership
// edge: retiring or reassigning a manager does not cascade.
type Employee struct {
	ID        string
	CompanyID string
	ManagerID *string
	Name      string
	Code      string
	JobTitle  *string
	HireDate  time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the employee has not been soft-retired as of t.
func (e Employee) IsActive(t time.Time) bool {
	return e.EndDate == nil || e.EndDate.After(t)
}

// EmploymentType enum
type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
)

// Employment - one active contract per employee. Contract changes insert a
// new row and stamp SupersededAt on the previous one, rows are never mutated
// in place.
type Employment struct {
	ID               string
	EmployeeID       string
	Type             EmploymentType
	BaseSalary       decimal.Decimal
	PaySchedule      string // 'monthly'
	BankReference    *string
	DailyWorkMinutes int
	EffectiveDate    time.Time
	SupersededAt     *time.Time
	CreatedAt        time.Time
}
