package leave

import (
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name              string `json:"leave_type_name"`
	Accrues           bool   `json:"accrues"`
	DefaultAnnualDays int    `json:"default_annual_days"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not exceed 255 characters",
		})
	}
	if r.DefaultAnnualDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_annual_days",
			Message: "default_annual_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProvisionBalanceRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Days        int    `json:"days"`
}

func (r *ProvisionBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}
	if r.Days < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r *SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string  `json:"request_id"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TypeResponse struct {
	ID                string `json:"leave_type_id"`
	CompanyID         string `json:"company_id"`
	Name              string `json:"leave_type_name"`
	Accrues           bool   `json:"accrues"`
	DefaultAnnualDays int    `json:"default_annual_days"`
}

func ToTypeResponse(t LeaveType) TypeResponse {
	return TypeResponse{
		ID:                t.ID,
		CompanyID:         t.CompanyID,
		Name:              t.Name,
		Accrues:           t.Accrues,
		DefaultAnnualDays: t.DefaultAnnualDays,
	}
}

type AuditResponse struct {
	ID            string    `json:"audit_id"`
	BalanceID     string    `json:"balance_id"`
	ActorID       string    `json:"actor_id"`
	DeltaDays     int       `json:"delta_days"`
	ResultingDays int       `json:"resulting_days"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToAuditResponse(a BalanceAudit) AuditResponse {
	return AuditResponse{
		ID:            a.ID,
		BalanceID:     a.BalanceID,
		ActorID:       a.ActorID,
		DeltaDays:     a.DeltaDays,
		ResultingDays: a.ResultingDays,
		Reason:        a.Reason,
		CreatedAt:     a.CreatedAt,
	}
}

type RequestResponse struct {
	ID            string     `json:"request_id"`
	EmployeeID    string     `json:"employee_id"`
	LeaveTypeID   string     `json:"leave_type_id"`
	LeaveTypeName *string    `json:"leave_type_name,omitempty"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	WorkingDays   int        `json:"working_days"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CancelledBy   *string    `json:"cancelled_by,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

func ToRequestResponse(r LeaveRequest) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		WorkingDays:   r.WorkingDays,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApprovedBy:    r.ApprovedBy,
		ApprovedAt:    r.ApprovedAt,
		CancelledBy:   r.CancelledBy,
		CancelledAt:   r.CancelledAt,
		SubmittedAt:   r.SubmittedAt,
	}
}

type BalanceResponse struct {
	ID          string `json:"balance_id"`
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	BalanceDays int    `json:"balance_days"`
}

func ToBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		LeaveTypeID: b.LeaveTypeID,
		PeriodStart: b.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   b.PeriodEnd.Format("2006-01-02"),
		BalanceDays: b.BalanceDays,
	}
}
