package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) Provision(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, period_start, period_end, balance_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, leave_type_id, period_start, period_end, balance_days, created_at, updated_at
	`

	var created leave.LeaveBalance
	err := q.QueryRow(ctx, query,
		b.EmployeeID, b.LeaveTypeID, b.PeriodStart, b.PeriodEnd, b.BalanceDays,
	).Scan(
		&created.ID, &created.EmployeeID, &created.LeaveTypeID,
		&created.PeriodStart, &created.PeriodEnd, &created.BalanceDays,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_leave_balance_period") {
			return leave.LeaveBalance{}, leave.ErrBalanceExists
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to provision leave balance: %w", err)
	}

	return created, nil
}

func (r *leaveBalanceRepository) GetForDate(ctx context.Context, employeeID, leaveTypeID string, on time.Time) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, period_start, period_end, balance_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND period_start <= $3 AND period_end >= $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, on).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID,
		&b.PeriodStart, &b.PeriodEnd, &b.BalanceDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveBalanceRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, period_start, period_end, balance_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY period_start DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID,
			&b.PeriodStart, &b.PeriodEnd, &b.BalanceDays,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Debit decrements the balance covering the given date in a single
// conditional statement. The balance_days >= $4 guard makes the check and
// decrement one atomic unit, concurrent debits cannot overdraw the row.
func (r *leaveBalanceRepository) Debit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_days = balance_days - $4, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
		  AND period_start <= $3 AND period_end >= $3
		  AND balance_days >= $4
		RETURNING id, employee_id, leave_type_id, period_start, period_end, balance_days, created_at, updated_at
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, on, days).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID,
		&b.PeriodStart, &b.PeriodEnd, &b.BalanceDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, fmt.Errorf("failed to debit leave balance: %w", err)
	}

	// No row updated: distinguish a missing balance from an insufficient one.
	if _, getErr := r.GetForDate(ctx, employeeID, leaveTypeID, on); getErr != nil {
		return leave.LeaveBalance{}, getErr
	}
	return leave.LeaveBalance{}, leave.ErrInsufficientBalance
}

func (r *leaveBalanceRepository) Credit(ctx context.Context, employeeID, leaveTypeID string, on time.Time, days int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_days = balance_days + $4, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
		  AND period_start <= $3 AND period_end >= $3
		RETURNING id, employee_id, leave_type_id, period_start, period_end, balance_days, created_at, updated_at
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, on, days).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID,
		&b.PeriodStart, &b.PeriodEnd, &b.BalanceDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to credit leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveBalanceRepository) AppendAudit(ctx context.Context, a leave.BalanceAudit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance_audits (balance_id, actor_id, delta_days, resulting_days, reason)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, a.BalanceID, a.ActorID, a.DeltaDays, a.ResultingDays, a.Reason); err != nil {
		return fmt.Errorf("failed to append balance audit: %w", err)
	}

	return nil
}

func (r *leaveBalanceRepository) ListAudits(ctx context.Context, balanceID string) ([]leave.BalanceAudit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, balance_id, actor_id, delta_days, resulting_days, reason, created_at
		FROM leave_balance_audits
		WHERE balance_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, balanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance audits: %w", err)
	}
	defer rows.Close()

	var audits []leave.BalanceAudit
	for rows.Next() {
		var a leave.BalanceAudit
		if err := rows.Scan(&a.ID, &a.BalanceID, &a.ActorID, &a.DeltaDays, &a.ResultingDays, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance audit: %w", err)
		}
		audits = append(audits, a)
	}

	return audits, rows.Err()
}
