package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name, timezone)
		VALUES ($1, $2)
		RETURNING id, name, timezone, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, c.Name, c.Timezone).Scan(
		&created.ID, &created.Name, &created.Timezone, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return created, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) company.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h company.Holiday) (company.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_holidays (company_id, holiday_date, name)
		VALUES ($1, $2, $3)
		RETURNING id, company_id, holiday_date, name, created_at
	`

	var created company.Holiday
	err := q.QueryRow(ctx, query, h.CompanyID, h.Date, h.Name).Scan(
		&created.ID, &created.CompanyID, &created.Date, &created.Name, &created.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_company_holiday_date") {
			return company.Holiday{}, company.ErrHolidayExists
		}
		return company.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return created, nil
}

func (r *holidayRepository) GetByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]company.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, holiday_date, name, created_at
		FROM company_holidays
		WHERE company_id = $1 AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []company.Holiday
	for rows.Next() {
		var h company.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

func (r *holidayRepository) Exists(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM company_holidays
			WHERE company_id = $1 AND holiday_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}
