package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workforcehq/workforce-backend-go/internal/domain/payroll"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

const (
	pgCodeUniqueViolation   = "23505"
	pgCodeLockNotAvailable  = "55P03"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepository{db: db}
}

const payrollRunColumns = `id, company_id, period, status, generated_at, locked_at, paid_at, created_at, updated_at`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.CompanyID, &run.Period, &run.Status,
		&run.GeneratedAt, &run.LockedAt, &run.PaidAt,
		&run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

// Create inserts a draft run. The uk_payroll_run_period unique index on
// (company_id, period) enforces run uniqueness transactionally, two
// concurrent creators cannot both succeed.
func (r *payrollRunRepository) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (company_id, period, status)
		VALUES ($1, $2, $3)
		RETURNING ` + payrollRunColumns

	created, err := scanRun(q.QueryRow(ctx, query, run.CompanyID, run.Period, run.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
			return payroll.Run{}, payroll.ErrDuplicateRun
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRunRepository) GetByID(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE id = $1`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

// GetForUpdate locks the run row for the duration of the surrounding
// transaction. NOWAIT turns lock contention into an immediate error so a
// concurrent generate call fails fast instead of queueing.
func (r *payrollRunRepository) GetForUpdate(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE id = $1 FOR UPDATE NOWAIT`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeLockNotAvailable {
			return payroll.Run{}, payroll.ErrAlreadyGenerating
		}
		return payroll.Run{}, fmt.Errorf("failed to lock payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepository) ListByCompanyID(ctx context.Context, companyID string) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRunColumns + `
		FROM payroll_runs
		WHERE company_id = $1
		ORDER BY period DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRunRepository) MarkGenerated(ctx context.Context, id string, at time.Time) error {
	return r.stampRun(ctx, id, `generated_at = $2`, at)
}

func (r *payrollRunRepository) MarkLocked(ctx context.Context, id string, at time.Time) error {
	return r.stampRun(ctx, id, `status = 'locked', locked_at = $2`, at)
}

func (r *payrollRunRepository) MarkPaid(ctx context.Context, id string, at time.Time) error {
	return r.stampRun(ctx, id, `status = 'paid', paid_at = $2`, at)
}

func (r *payrollRunRepository) stampRun(ctx context.Context, id, set string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_runs SET ` + set + `, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to update payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// ReplaceItems clears any previously generated items before inserting the new
// set, so regenerating a draft run is idempotent rather than additive.
func (r *payrollRunRepository) ReplaceItems(ctx context.Context, runID string, items []payroll.Item) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_items WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear payroll items: %w", err)
	}

	query := `
		INSERT INTO payroll_items (run_id, employee_id, component, type, amount)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := q.Exec(ctx, query, runID, item.EmployeeID, item.Component, item.Type, item.Amount); err != nil {
			return fmt.Errorf("failed to insert payroll item: %w", err)
		}
	}

	return nil
}

func (r *payrollRunRepository) ListItems(ctx context.Context, runID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, component, type, amount, created_at
		FROM payroll_items
		WHERE run_id = $1
		ORDER BY employee_id, component
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll items: %w", err)
	}
	defer rows.Close()

	var items []payroll.Item
	for rows.Next() {
		var item payroll.Item
		if err := rows.Scan(&item.ID, &item.RunID, &item.EmployeeID, &item.Component, &item.Type, &item.Amount, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *payrollRunRepository) ReplacePayslips(ctx context.Context, runID string, payslips []payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslips WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear payslips: %w", err)
	}

	query := `
		INSERT INTO payslips (run_id, employee_id, gross_pay, deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, p := range payslips {
		if _, err := q.Exec(ctx, query, runID, p.EmployeeID, p.GrossPay, p.Deductions, p.NetPay); err != nil {
			return fmt.Errorf("failed to insert payslip: %w", err)
		}
	}

	return nil
}

func (r *payrollRunRepository) ListPayslips(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.run_id, p.employee_id, p.gross_pay, p.deductions, p.net_pay,
			   p.published_at, p.paid_at, p.created_at, p.updated_at, e.name, e.code
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.run_id = $1
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		if err := rows.Scan(
			&p.ID, &p.RunID, &p.EmployeeID, &p.GrossPay, &p.Deductions, &p.NetPay,
			&p.PublishedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName, &p.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payrollRunRepository) CountPayslips(ctx context.Context, runID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE run_id = $1`, runID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	return count, nil
}

func (r *payrollRunRepository) CountUnpublishedPayslips(ctx context.Context, runID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE run_id = $1 AND published_at IS NULL`, runID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unpublished payslips: %w", err)
	}

	return count, nil
}

// PublishPayslips stamps published_at only where unset, re-publishing is a
// no-op for already published slips.
func (r *payrollRunRepository) PublishPayslips(ctx context.Context, runID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET published_at = $2, updated_at = NOW()
		WHERE run_id = $1 AND published_at IS NULL
	`

	if _, err := q.Exec(ctx, query, runID, at); err != nil {
		return fmt.Errorf("failed to publish payslips: %w", err)
	}

	return nil
}

func (r *payrollRunRepository) MarkPayslipsPaid(ctx context.Context, runID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET paid_at = $2, updated_at = NOW()
		WHERE run_id = $1 AND paid_at IS NULL
	`

	if _, err := q.Exec(ctx, query, runID, at); err != nil {
		return fmt.Errorf("failed to mark payslips paid: %w", err)
	}

	return nil
}
