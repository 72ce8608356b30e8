package payroll

import (
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

type CreateRunRequest struct {
	Period string `json:"period"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RunResponse struct {
	ID          string     `json:"run_id"`
	CompanyID   string     `json:"company_id"`
	Period      string     `json:"period"`
	Status      string     `json:"status"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

func ToRunResponse(r Run) RunResponse {
	return RunResponse{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Period:      r.Period,
		Status:      string(r.Status),
		GeneratedAt: r.GeneratedAt,
		LockedAt:    r.LockedAt,
		PaidAt:      r.PaidAt,
	}
}

// Monetary amounts serialize as decimal strings, never floating point.
type PayslipResponse struct {
	ID          string     `json:"payslip_id"`
	RunID       string     `json:"run_id"`
	EmployeeID  string     `json:"employee_id"`
	GrossPay    string     `json:"gross_pay"`
	Deductions  string     `json:"deductions"`
	NetPay      string     `json:"net_pay"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:          p.ID,
		RunID:       p.RunID,
		EmployeeID:  p.EmployeeID,
		GrossPay:    p.GrossPay.String(),
		Deductions:  p.Deductions.String(),
		NetPay:      p.NetPay.String(),
		PublishedAt: p.PublishedAt,
		PaidAt:      p.PaidAt,
	}
}

type ItemResponse struct {
	ID         string `json:"item_id"`
	RunID      string `json:"run_id"`
	EmployeeID string `json:"employee_id"`
	Component  string `json:"component"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
}

func ToItemResponse(i Item) ItemResponse {
	return ItemResponse{
		ID:         i.ID,
		RunID:      i.RunID,
		EmployeeID: i.EmployeeID,
		Component:  i.Component,
		Type:       string(i.Type),
		Amount:     i.Amount.String(),
	}
}
