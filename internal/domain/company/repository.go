package company

import (
	"context"
	"time"
)

// CompanyRepository - interface for companies table
type CompanyRepository interface {
	Create(ctx context.Context, company Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
}

// HolidayRepository - interface for company_holidays table
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
	Exists(ctx context.Context, companyID string, date time.Time) (bool, error)
}

// HolidayCalendar is the collaborator the leave and payroll workflows consult
// when counting working days.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)
}
