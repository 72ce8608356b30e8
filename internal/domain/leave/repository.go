package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
}

// LeaveBalanceRepository - interface for leave_balances and
// leave_balance_audits tables. Debit and Credit are single conditional
// statements so two concurrent approvals cannot overdraw a row.
type LeaveBalanceRepository interface {
	Provision(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetForDate(ctx context.Context, employeeID, leaveTypeID string, on time.Time) (LeaveBalance, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Debit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (LeaveBalance, error)
	Credit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (LeaveBalance, error)
	AppendAudit(ctx context.Context, audit BalanceAudit) error
	ListAudits(ctx context.Context, balanceID string) ([]BalanceAudit, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetByCompanyID(ctx context.Context, companyID string, status *RequestStatus) ([]LeaveRequest, error)
	HasOpenOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	Update(ctx context.Context, request LeaveRequest) error
}
