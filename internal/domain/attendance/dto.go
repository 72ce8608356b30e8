package attendance

import (
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

type RecordEventRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"event_type"`
	Notes      *string `json:"notes,omitempty"`
	Source     string  `json:"source"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	switch EventType(r.Type) {
	case EventTypeClockIn, EventTypeClockOut:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "event_type",
			Message: "event_type must be clock_in or clock_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CloseDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *CloseDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID         string    `json:"event_id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Notes      *string   `json:"notes,omitempty"`
	Source     string    `json:"source"`
}

func ToEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Type:       string(e.Type),
		OccurredAt: e.OccurredAt,
		Notes:      e.Notes,
		Source:     e.Source,
	}
}

type TimesheetResponse struct {
	ID              string `json:"timesheet_id"`
	EmployeeID      string `json:"employee_id"`
	WorkDate        string `json:"work_date"`
	WorkMinutes     int    `json:"work_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Status          string `json:"status"`
	OpenEntry       bool   `json:"open_entry"`
}

func ToTimesheetResponse(t Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		WorkDate:        t.WorkDate.Format("2006-01-02"),
		WorkMinutes:     t.WorkMinutes,
		OvertimeMinutes: t.OvertimeMinutes,
		Status:          string(t.Status),
		OpenEntry:       t.OpenEntry,
	}
}
