package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft  RunStatus = "draft"
	RunStatusLocked RunStatus = "locked"
	RunStatusPaid   RunStatus = "paid"
)

// Run - one payroll processing cycle per (company, period). Period is a
// year-month string, "2006-01". Uniqueness per company and period is a
// database constraint, not a read-then-write check.
type Run struct {
	ID          string
	CompanyID   string
	Period      string
	Status      RunStatus
	GeneratedAt *time.Time
	LockedAt    *time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemType enum
type ItemType string

const (
	ItemTypeEarning   ItemType = "earning"
	ItemTypeDeduction ItemType = "deduction"
)

// Item - a single earning or deduction line within a run.
type Item struct {
	ID         string
	RunID      string
	EmployeeID string
	Component  string
	Type       ItemType
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// Payslip - finalized pay statement for one employee in one run.
// NetPay == GrossPay - Deductions holds exactly, all three non-negative.
type Payslip struct {
	ID          string
	RunID       string
	EmployeeID  string
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	PublishedAt *time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
