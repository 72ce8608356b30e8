package leave

import "time"

// LeaveType entity. Immutable once balances reference it, except for
// administrative correction.
type LeaveType struct {
	ID                string
	CompanyID         string
	Name              string
	Accrues           bool
	DefaultAnnualDays int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LeaveBalance - ledger row keyed by (employee, leave type, period). The
// period is a closed date range, non-overlapping per (employee, leave type).
// BalanceDays never goes negative: debits are conditional updates backed by a
// CHECK constraint.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	PeriodStart time.Time
	PeriodEnd   time.Time
	BalanceDays int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceAudit - append-only record of every ledger mutation, kept for
// payroll and HR disputes.
type BalanceAudit struct {
	ID            string
	BalanceID     string
	ActorID       string
	DeltaDays     int
	ResultingDays int
	Reason        string
	CreatedAt     time.Time
}

type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusCancelled
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	// WorkingDays is recomputed on submit from the holiday calendar, never
	// trusted from client input.
	WorkingDays int

	Reason string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CancelledBy *string
	CancelledAt *time.Time

	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	LeaveTypeName *string
	EmployeeName  *string
}
