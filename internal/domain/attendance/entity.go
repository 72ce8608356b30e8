package attendance

import "time"

// EventType enum
type EventType string

const (
	EventTypeClockIn  EventType = "clock_in"
	EventTypeClockOut EventType = "clock_out"
)

// Event - append-only clock event. Never updated or deleted, corrections are
// new compensating entries.
type Event struct {
	ID         string
	EmployeeID string
	Type       EventType
	OccurredAt time.Time
	Notes      *string
	Source     string
	CreatedAt  time.Time
}

// TimesheetStatus enum
type TimesheetStatus string

const (
	TimesheetStatusDraft    TimesheetStatus = "draft"
	TimesheetStatusPosted   TimesheetStatus = "posted"
	TimesheetStatusApproved TimesheetStatus = "approved"
)

// Timesheet - derived daily rollup, one row per (employee, date). Recomputed
// from event pairs, never hand-edited once posted.
type Timesheet struct {
	ID              string
	EmployeeID      string
	WorkDate        time.Time
	WorkMinutes     int
	OvertimeMinutes int
	Status          TimesheetStatus
	// OpenEntry marks a day that closed with an unmatched clock-in, the
	// rollup is a best-effort partial in that case.
	OpenEntry bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
