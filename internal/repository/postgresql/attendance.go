package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

func (r *attendanceEventRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_events (id, employee_id, type, occurred_at, notes, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, type, occurred_at, notes, source, created_at
	`

	var created attendance.Event
	err := q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.Type, event.OccurredAt, event.Notes, event.Source,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.OccurredAt,
		&created.Notes, &created.Source, &created.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return created, nil
}

func (r *attendanceEventRepository) LatestForRange(ctx context.Context, employeeID string, from, to time.Time) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, occurred_at, notes, source, created_at
		FROM attendance_events
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC
		LIMIT 1
	`

	var e attendance.Event
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&e.ID, &e.EmployeeID, &e.Type, &e.OccurredAt, &e.Notes, &e.Source, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNoEventsForDay
		}
		return attendance.Event{}, fmt.Errorf("failed to get latest attendance event: %w", err)
	}

	return e, nil
}

func (r *attendanceEventRepository) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, occurred_at, notes, source, created_at
		FROM attendance_events
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Type, &e.OccurredAt, &e.Notes, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) attendance.TimesheetRepository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) Upsert(ctx context.Context, sheet attendance.Timesheet) (attendance.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	// The conflict arm only touches draft rows. Posted and approved sheets
	// are frozen for this path, status changes go through UpdateStatus.
	query := `
		INSERT INTO timesheets (employee_id, work_date, work_minutes, overtime_minutes, status, open_entry)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			work_minutes = EXCLUDED.work_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			status = EXCLUDED.status,
			open_entry = EXCLUDED.open_entry,
			updated_at = NOW()
		WHERE timesheets.status = 'draft'
		RETURNING id, employee_id, work_date, work_minutes, overtime_minutes, status, open_entry, created_at, updated_at
	`

	var t attendance.Timesheet
	err := q.QueryRow(ctx, query,
		sheet.EmployeeID, sheet.WorkDate, sheet.WorkMinutes, sheet.OvertimeMinutes, sheet.Status, sheet.OpenEntry,
	).Scan(
		&t.ID, &t.EmployeeID, &t.WorkDate, &t.WorkMinutes, &t.OvertimeMinutes,
		&t.Status, &t.OpenEntry, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Timesheet{}, attendance.ErrInvalidStatus
		}
		return attendance.Timesheet{}, fmt.Errorf("failed to upsert timesheet: %w", err)
	}

	return t, nil
}

func (r *timesheetRepository) Get(ctx context.Context, employeeID string, workDate time.Time) (attendance.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_date, work_minutes, overtime_minutes, status, open_entry, created_at, updated_at
		FROM timesheets
		WHERE employee_id = $1 AND work_date = $2
	`

	var t attendance.Timesheet
	err := q.QueryRow(ctx, query, employeeID, workDate).Scan(
		&t.ID, &t.EmployeeID, &t.WorkDate, &t.WorkMinutes, &t.OvertimeMinutes,
		&t.Status, &t.OpenEntry, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Timesheet{}, attendance.ErrTimesheetNotFound
		}
		return attendance.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return t, nil
}

func (r *timesheetRepository) UpdateStatus(ctx context.Context, id string, status attendance.TimesheetStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update timesheet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrTimesheetNotFound
	}

	return nil
}

func (r *timesheetRepository) ListPostedByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, t.work_date, t.work_minutes, t.overtime_minutes, t.status, t.open_entry, t.created_at, t.updated_at
		FROM timesheets t
		JOIN employees e ON e.id = t.employee_id
		WHERE e.company_id = $1
		  AND t.work_date BETWEEN $2 AND $3
		  AND t.status IN ('posted', 'approved')
		ORDER BY t.employee_id, t.work_date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list posted timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []attendance.Timesheet
	for rows.Next() {
		var t attendance.Timesheet
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.WorkDate, &t.WorkMinutes, &t.OvertimeMinutes,
			&t.Status, &t.OpenEntry, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, t)
	}

	return sheets, rows.Err()
}
