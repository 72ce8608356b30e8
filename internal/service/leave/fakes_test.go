package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
)

// passthroughTx satisfies database.Transactor without a real database. The
// services only need the callback to run.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBalanceRepo struct {
	balances []leave.LeaveBalance
	audits   []leave.BalanceAudit
	nextID   int
}

func (r *fakeBalanceRepo) find(employeeID, leaveTypeID string, on time.Time) *leave.LeaveBalance {
	for i := range r.balances {
		b := &r.balances[i]
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID &&
			!on.Before(b.PeriodStart) && !on.After(b.PeriodEnd) {
			return b
		}
	}
	return nil
}

func (r *fakeBalanceRepo) Provision(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	for _, b := range r.balances {
		if b.EmployeeID == balance.EmployeeID && b.LeaveTypeID == balance.LeaveTypeID &&
			b.PeriodStart.Equal(balance.PeriodStart) {
			return leave.LeaveBalance{}, leave.ErrBalanceExists
		}
	}
	r.nextID++
	balance.ID = fmt.Sprintf("balance-%d", r.nextID)
	r.balances = append(r.balances, balance)
	return balance, nil
}

func (r *fakeBalanceRepo) GetForDate(ctx context.Context, employeeID, leaveTypeID string, on time.Time) (leave.LeaveBalance, error) {
	if b := r.find(employeeID, leaveTypeID, on); b != nil {
		return *b, nil
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (r *fakeBalanceRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range r.balances {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) Debit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (leave.LeaveBalance, error) {
	b := r.find(employeeID, leaveTypeID, on)
	if b == nil {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	if b.BalanceDays < days {
		return leave.LeaveBalance{}, leave.ErrInsufficientBalance
	}
	b.BalanceDays -= days
	return *b, nil
}

func (r *fakeBalanceRepo) Credit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (leave.LeaveBalance, error) {
	b := r.find(employeeID, leaveTypeID, on)
	if b == nil {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	b.BalanceDays += days
	return *b, nil
}

func (r *fakeBalanceRepo) AppendAudit(ctx context.Context, audit leave.BalanceAudit) error {
	audit.ID = fmt.Sprintf("audit-%d", len(r.audits)+1)
	audit.CreatedAt = time.Now()
	r.audits = append(r.audits, audit)
	return nil
}

func (r *fakeBalanceRepo) ListAudits(ctx context.Context, balanceID string) ([]leave.BalanceAudit, error) {
	var out []leave.BalanceAudit
	for _, a := range r.audits {
		if a.BalanceID == balanceID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLeaveTypeRepo struct {
	types []leave.LeaveType
}

func (r *fakeLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	leaveType.ID = fmt.Sprintf("type-%d", len(r.types)+1)
	r.types = append(r.types, leaveType)
	return leaveType, nil
}

func (r *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	for _, t := range r.types {
		if t.ID == id {
			return t, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (r *fakeLeaveTypeRepo) GetByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, t := range r.types {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests []leave.LeaveRequest
}

func (r *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = fmt.Sprintf("request-%d", len(r.requests)+1)
	request.CreatedAt = time.Now()
	r.requests = append(r.requests, request)
	return request, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (r *fakeRequestRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) GetByCompanyID(ctx context.Context, companyID string, status *leave.RequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if status == nil || req.Status == *status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) HasOpenOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.RequestStatusDraft && req.Status != leave.RequestStatusPending && req.Status != leave.RequestStatusApproved {
			continue
		}
		if !req.StartDate.After(endDate) && !req.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, request leave.LeaveRequest) error {
	for i, req := range r.requests {
		if req.ID == request.ID {
			r.requests[i] = request
			return nil
		}
	}
	return leave.ErrRequestNotFound
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = fmt.Sprintf("employee-%d", len(r.employees)+1)
	r.employees = append(r.employees, emp)
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) HasHistory(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *fakeEmployeeRepo) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	for i := range r.employees {
		if r.employees[i].ID == id {
			r.employees[i].EndDate = &endDate
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

// staticCalendar marks a fixed set of dates as holidays.
type staticCalendar struct {
	holidays map[string]bool
}

func (c staticCalendar) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return c.holidays[date.Format("2006-01-02")], nil
}

// staticAuthority grants approval rights to a fixed set of employee IDs plus
// any hr or admin actor.
type staticAuthority struct {
	allowed map[string]bool
}

func (a staticAuthority) HasApprovalAuthority(ctx context.Context, actorEmployeeID *string, actorRole employee.Role, employeeID string) (bool, error) {
	if actorRole == employee.RoleAdmin || actorRole == employee.RoleHR {
		return true, nil
	}
	if actorEmployeeID == nil {
		return false, nil
	}
	return a.allowed[*actorEmployeeID], nil
}
