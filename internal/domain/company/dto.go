package company

import (
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

type AddHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"holiday_name"`
}

func (r *AddHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_name",
			Message: "holiday_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanyResponse struct {
	ID       string `json:"company_id"`
	Name     string `json:"company_name"`
	Timezone string `json:"timezone"`
}

func ToCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Timezone: c.Timezone,
	}
}

type HolidayResponse struct {
	ID        string    `json:"holiday_id"`
	CompanyID string    `json:"company_id"`
	Date      string    `json:"date"`
	Name      string    `json:"holiday_name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		CreatedAt: h.CreatedAt,
	}
}
