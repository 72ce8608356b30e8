package attendance

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("employee is already clocked in")
	ErrNotClockedIn      = errors.New("employee is not clocked in")
	ErrNoEventsForDay    = errors.New("no attendance events recorded for this day")
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrNoHoursRecorded   = errors.New("timesheet has no hours recorded")
	ErrInvalidStatus     = errors.New("timesheet cannot transition from its current status")
)
