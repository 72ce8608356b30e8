package attendance

import (
	"context"
	"time"
)

// EventRepository - interface for attendance_events table, append-only.
type EventRepository interface {
	Append(ctx context.Context, event Event) (Event, error)
	LatestForRange(ctx context.Context, employeeID string, from, to time.Time) (Event, error)
	ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)
}

// TimesheetRepository - interface for timesheets table
type TimesheetRepository interface {
	Upsert(ctx context.Context, sheet Timesheet) (Timesheet, error)
	Get(ctx context.Context, employeeID string, workDate time.Time) (Timesheet, error)
	UpdateStatus(ctx context.Context, id string, status TimesheetStatus) error
	ListPostedByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Timesheet, error)
}
