package employee

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name             string  `json:"name"`
	Code             string  `json:"employee_code"`
	JobTitle         *string `json:"job_title,omitempty"`
	ManagerID        *string `json:"manager_id,omitempty"`
	HireDate         string  `json:"hire_date"`
	EmploymentType   string  `json:"employment_type"`
	BaseSalary       string  `json:"base_salary"`
	BankReference    *string `json:"bank_reference,omitempty"`
	DailyWorkMinutes *int    `json:"daily_work_minutes,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}
	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be full_time, part_time or contract",
		})
	}
	if salary, err := decimal.NewFromString(r.BaseSalary); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be a decimal string",
		})
	} else if salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}
	if r.DailyWorkMinutes != nil && *r.DailyWorkMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_work_minutes",
			Message: "daily_work_minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SupersedeEmploymentRequest struct {
	EmployeeID       string  `json:"employee_id"`
	EmploymentType   string  `json:"employment_type"`
	BaseSalary       string  `json:"base_salary"`
	BankReference    *string `json:"bank_reference,omitempty"`
	DailyWorkMinutes *int    `json:"daily_work_minutes,omitempty"`
	EffectiveDate    string  `json:"effective_date"`
}

func (r *SupersedeEmploymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be full_time, part_time or contract",
		})
	}
	if salary, err := decimal.NewFromString(r.BaseSalary); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be a decimal string",
		})
	} else if salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RetireEmployeeRequest struct {
	EndDate string `json:"end_date"`
}

func (r *RetireEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID        string     `json:"employee_id"`
	CompanyID string     `json:"company_id"`
	ManagerID *string    `json:"manager_id,omitempty"`
	Name      string     `json:"name"`
	Code      string     `json:"employee_code"`
	JobTitle  *string    `json:"job_title,omitempty"`
	HireDate  string     `json:"hire_date"`
	EndDate   *string    `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		ManagerID: e.ManagerID,
		Name:      e.Name,
		Code:      e.Code,
		JobTitle:  e.JobTitle,
		HireDate:  e.HireDate.Format("2006-01-02"),
		CreatedAt: e.CreatedAt,
	}
	if e.EndDate != nil {
		endDate := e.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}

// Monetary amounts serialize as decimal strings, never floating point.
type EmploymentResponse struct {
	ID               string     `json:"employment_id"`
	EmployeeID       string     `json:"employee_id"`
	Type             string     `json:"employment_type"`
	BaseSalary       string     `json:"base_salary"`
	PaySchedule      string     `json:"pay_schedule"`
	DailyWorkMinutes int        `json:"daily_work_minutes"`
	EffectiveDate    string     `json:"effective_date"`
	SupersededAt     *time.Time `json:"superseded_at,omitempty"`
}

func ToEmploymentResponse(e Employment) EmploymentResponse {
	return EmploymentResponse{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		Type:             string(e.Type),
		BaseSalary:       e.BaseSalary.String(),
		PaySchedule:      e.PaySchedule,
		DailyWorkMinutes: e.DailyWorkMinutes,
		EffectiveDate:    e.EffectiveDate.Format("2006-01-02"),
		SupersededAt:     e.SupersededAt,
	}
}
