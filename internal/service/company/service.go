package company

import (
	"context"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
)

type CompanyService struct {
	companyRepo company.CompanyRepository
	holidayRepo company.HolidayRepository
}

func NewCompanyService(companyRepo company.CompanyRepository, holidayRepo company.HolidayRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		holidayRepo: holidayRepo,
	}
}

func (s *CompanyService) GetByID(ctx context.Context, id string) (company.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *CompanyService) AddHoliday(ctx context.Context, companyID string, date time.Time, name string) (company.Holiday, error) {
	return s.holidayRepo.Create(ctx, company.Holiday{
		CompanyID: companyID,
		Date:      date,
		Name:      name,
	})
}

func (s *CompanyService) ListHolidays(ctx context.Context, companyID string, from, to time.Time) ([]company.Holiday, error) {
	return s.holidayRepo.GetByCompanyAndRange(ctx, companyID, from, to)
}

// IsHoliday implements company.HolidayCalendar for the leave working-day
// calculation.
func (s *CompanyService) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return s.holidayRepo.Exists(ctx, companyID, date)
}
