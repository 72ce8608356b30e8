package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (company_id, manager_id, name, code, job_title, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, manager_id, name, code, job_title, hire_date, end_date, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		emp.CompanyID, emp.ManagerID, emp.Name, emp.Code, emp.JobTitle, emp.HireDate,
	).Scan(
		&created.ID, &created.CompanyID, &created.ManagerID, &created.Name, &created.Code,
		&created.JobTitle, &created.HireDate, &created.EndDate, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, manager_id, name, code, job_title, hire_date, end_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.CompanyID, &emp.ManagerID, &emp.Name, &emp.Code,
		&emp.JobTitle, &emp.HireDate, &emp.EndDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, manager_id, name, code, job_title, hire_date, end_date, created_at, updated_at
		FROM employees
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.ManagerID, &emp.Name, &emp.Code,
			&emp.JobTitle, &emp.HireDate, &emp.EndDate, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// HasHistory reports whether any dependent rows reference the employee.
// Used to refuse hard deletion, only soft retirement is allowed then.
func (r *employeeRepository) HasHistory(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM attendance_events WHERE employee_id = $1)
			OR EXISTS (SELECT 1 FROM leave_requests WHERE employee_id = $1)
			OR EXISTS (SELECT 1 FROM payslips WHERE employee_id = $1)
	`

	var has bool
	if err := q.QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("failed to check employee history: %w", err)
	}

	return has, nil
}

func (r *employeeRepository) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET end_date = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, endDate)
	if err != nil {
		return fmt.Errorf("failed to set employee end date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

type employmentRepository struct {
	db *database.DB
}

func NewEmploymentRepository(db *database.DB) employee.EmploymentRepository {
	return &employmentRepository{db: db}
}

func (r *employmentRepository) Create(ctx context.Context, e employee.Employment) (employee.Employment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employments (employee_id, type, base_salary, pay_schedule, bank_reference, daily_work_minutes, effective_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, type, base_salary, pay_schedule, bank_reference, daily_work_minutes, effective_date, superseded_at, created_at
	`

	var created employee.Employment
	err := q.QueryRow(ctx, query,
		e.EmployeeID, e.Type, e.BaseSalary, e.PaySchedule, e.BankReference, e.DailyWorkMinutes, e.EffectiveDate,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.BaseSalary, &created.PaySchedule,
		&created.BankReference, &created.DailyWorkMinutes, &created.EffectiveDate, &created.SupersededAt, &created.CreatedAt,
	)
	if err != nil {
		return employee.Employment{}, fmt.Errorf("failed to create employment: %w", err)
	}

	return created, nil
}

func (r *employmentRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string, asOf time.Time) (employee.Employment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, base_salary, pay_schedule, bank_reference, daily_work_minutes, effective_date, superseded_at, created_at
		FROM employments
		WHERE employee_id = $1 AND effective_date <= $2 AND superseded_at IS NULL
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var e employee.Employment
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&e.ID, &e.EmployeeID, &e.Type, &e.BaseSalary, &e.PaySchedule,
		&e.BankReference, &e.DailyWorkMinutes, &e.EffectiveDate, &e.SupersededAt, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employment{}, employee.ErrEmploymentNotFound
		}
		return employee.Employment{}, fmt.Errorf("failed to get active employment: %w", err)
	}

	return e, nil
}

func (r *employmentRepository) ListActiveByCompanyID(ctx context.Context, companyID string, asOf time.Time) ([]employee.Employment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT em.id, em.employee_id, em.type, em.base_salary, em.pay_schedule, em.bank_reference,
			   em.daily_work_minutes, em.effective_date, em.superseded_at, em.created_at
		FROM employments em
		JOIN employees e ON e.id = em.employee_id
		WHERE e.company_id = $1
		  AND em.effective_date <= $2
		  AND em.superseded_at IS NULL
		  AND (e.end_date IS NULL OR e.end_date > $2)
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employments: %w", err)
	}
	defer rows.Close()

	var employments []employee.Employment
	for rows.Next() {
		var e employee.Employment
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Type, &e.BaseSalary, &e.PaySchedule,
			&e.BankReference, &e.DailyWorkMinutes, &e.EffectiveDate, &e.SupersededAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employment: %w", err)
		}
		employments = append(employments, e)
	}

	return employments, rows.Err()
}

func (r *employmentRepository) Supersede(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employments
		SET superseded_at = $2
		WHERE id = $1 AND superseded_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to supersede employment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmploymentNotFound
	}

	return nil
}
