package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.working_days, lr.reason, lr.status, lr.approved_by, lr.approved_at,
	lr.rejection_reason, lr.cancelled_by, lr.cancelled_at, lr.submitted_at,
	lr.created_at, lr.updated_at, lt.name, e.name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveTypeID, &r.StartDate, &r.EndDate,
		&r.WorkingDays, &r.Reason, &r.Status, &r.ApprovedBy, &r.ApprovedAt,
		&r.RejectionReason, &r.CancelledBy, &r.CancelledAt, &r.SubmittedAt,
		&r.CreatedAt, &r.UpdatedAt, &r.LeaveTypeName, &r.EmployeeName,
	)
	return r, err
}

func (repo *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, working_days, reason, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, leave_type_id, start_date, end_date, working_days, reason, status,
			approved_by, approved_at, rejection_reason, cancelled_by, cancelled_at, submitted_at,
			created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.WorkingDays, request.Reason, request.Status, request.SubmittedAt,
	).Scan(
		&created.ID, &created.EmployeeID, &created.LeaveTypeID, &created.StartDate, &created.EndDate,
		&created.WorkingDays, &created.Reason, &created.Status,
		&created.ApprovedBy, &created.ApprovedAt, &created.RejectionReason,
		&created.CancelledBy, &created.CancelledAt, &created.SubmittedAt,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (repo *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

func (repo *leaveRequestRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.employee_id = $1
		ORDER BY lr.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func (repo *leaveRequestRepository) GetByCompanyID(ctx context.Context, companyID string, status *leave.RequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE e.company_id = $1 AND ($2::text IS NULL OR lr.status = $2)
		ORDER BY lr.start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list company leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// HasOpenOverlap reports whether a non-terminal request for the employee
// overlaps [startDate, endDate].
func (repo *leaveRequestRepository) HasOpenOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('draft', 'pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var overlap bool
	if err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&overlap); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return overlap, nil
}

func (repo *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5,
			cancelled_by = $6, cancelled_at = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		request.ID, request.Status, request.ApprovedBy, request.ApprovedAt,
		request.RejectionReason, request.CancelledBy, request.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}
