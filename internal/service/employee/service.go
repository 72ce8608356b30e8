package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type EmployeeService struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	employmentRepo employee.EmploymentRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	employmentRepo employee.EmploymentRepository,
) *EmployeeService {
	return &EmployeeService{
		tx:             tx,
		employeeRepo:   employeeRepo,
		employmentRepo: employmentRepo,
	}
}

// Create hires an employee: the employee row and the initial employment
// contract are written together.
func (s *EmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	baseSalary, _ := decimal.NewFromString(req.BaseSalary)

	dailyWorkMinutes := 8 * 60
	if req.DailyWorkMinutes != nil {
		dailyWorkMinutes = *req.DailyWorkMinutes
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			CompanyID: companyID,
			ManagerID: req.ManagerID,
			Name:      req.Name,
			Code:      req.Code,
			JobTitle:  req.JobTitle,
			HireDate:  hireDate,
		})
		if err != nil {
			return err
		}

		_, err = s.employmentRepo.Create(ctx, employee.Employment{
			EmployeeID:       created.ID,
			Type:             employee.EmploymentType(req.EmploymentType),
			BaseSalary:       baseSalary,
			PaySchedule:      "monthly",
			BankReference:    req.BankReference,
			DailyWorkMinutes: dailyWorkMinutes,
			EffectiveDate:    hireDate,
		})
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *EmployeeService) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return s.employeeRepo.GetByCompanyID(ctx, companyID)
}

// Retire soft-retires an employee by stamping the end date. Hard deletion is
// never offered while history references the employee.
func (s *EmployeeService) Retire(ctx context.Context, id string, endDate time.Time) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.EndDate != nil {
		return employee.Employee{}, employee.ErrEmployeeRetired
	}

	var retired employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.SetEndDate(ctx, id, endDate); err != nil {
			return err
		}

		// Close out the active contract alongside the retirement.
		employment, err := s.employmentRepo.GetActiveByEmployeeID(ctx, id, endDate)
		if err != nil {
			if err == employee.ErrEmploymentNotFound {
				return nil
			}
			return err
		}
		return s.employmentRepo.Supersede(ctx, employment.ID, endDate)
	})
	if err != nil {
		return employee.Employee{}, err
	}

	retired = emp
	retired.EndDate = &endDate
	return retired, nil
}

// SupersedeEmployment replaces the active contract with a new one, the old
// row is stamped rather than mutated.
func (s *EmployeeService) SupersedeEmployment(ctx context.Context, req employee.SupersedeEmploymentRequest) (employee.Employment, error) {
	if err := req.Validate(); err != nil {
		return employee.Employment{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)
	baseSalary, _ := decimal.NewFromString(req.BaseSalary)

	current, err := s.employmentRepo.GetActiveByEmployeeID(ctx, req.EmployeeID, effectiveDate)
	if err != nil {
		return employee.Employment{}, err
	}

	dailyWorkMinutes := current.DailyWorkMinutes
	if req.DailyWorkMinutes != nil {
		dailyWorkMinutes = *req.DailyWorkMinutes
	}
	bankReference := current.BankReference
	if req.BankReference != nil {
		bankReference = req.BankReference
	}

	var created employee.Employment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employmentRepo.Supersede(ctx, current.ID, effectiveDate); err != nil {
			return err
		}

		var err error
		created, err = s.employmentRepo.Create(ctx, employee.Employment{
			EmployeeID:       req.EmployeeID,
			Type:             employee.EmploymentType(req.EmploymentType),
			BaseSalary:       baseSalary,
			PaySchedule:      current.PaySchedule,
			BankReference:    bankReference,
			DailyWorkMinutes: dailyWorkMinutes,
			EffectiveDate:    effectiveDate,
		})
		return err
	})
	if err != nil {
		return employee.Employment{}, err
	}

	return created, nil
}

// AuthorityService implements the approval-authority collaborator: hr and
// admin roles may approve anyone in scope, otherwise only the direct manager
// may.
type AuthorityService struct {
	employeeRepo employee.EmployeeRepository
}

func NewAuthorityService(employeeRepo employee.EmployeeRepository) *AuthorityService {
	return &AuthorityService{employeeRepo: employeeRepo}
}

func (s *AuthorityService) HasApprovalAuthority(ctx context.Context, actorEmployeeID *string, actorRole employee.Role, employeeID string) (bool, error) {
	if actorRole == employee.RoleAdmin || actorRole == employee.RoleHR {
		return true, nil
	}
	if actorEmployeeID == nil {
		return false, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp.ManagerID != nil && *emp.ManagerID == *actorEmployeeID, nil
}
