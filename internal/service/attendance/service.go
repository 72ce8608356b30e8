package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
)

// CloseDayResult carries the rolled-up timesheet plus a warning when the day
// ended with an unmatched clock-in.
type CloseDayResult struct {
	Timesheet attendance.Timesheet
	OpenEntry bool
}

// AggregatorService converts raw clock events into per-day timesheets.
type AggregatorService struct {
	eventRepo      attendance.EventRepository
	timesheetRepo  attendance.TimesheetRepository
	employmentRepo employee.EmploymentRepository
}

func NewAggregatorService(
	eventRepo attendance.EventRepository,
	timesheetRepo attendance.TimesheetRepository,
	employmentRepo employee.EmploymentRepository,
) *AggregatorService {
	return &AggregatorService{
		eventRepo:      eventRepo,
		timesheetRepo:  timesheetRepo,
		employmentRepo: employmentRepo,
	}
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// RecordEvent appends a clock event. A clock-in while the latest event of the
// day is already a clock-in is rejected, and symmetrically for clock-out
// without a prior clock-in.
func (s *AggregatorService) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.Event, error) {
	if err := req.Validate(); err != nil {
		return attendance.Event{}, err
	}

	// Days are bucketed in UTC everywhere, same zone CloseDay parses its
	// date in. Mixing zones would let the alternation check and the rollup
	// see different event ranges.
	now := time.Now().UTC()
	dayStart, dayEnd := dayBounds(now)
	eventType := attendance.EventType(req.Type)

	latest, err := s.eventRepo.LatestForRange(ctx, req.EmployeeID, dayStart, dayEnd)
	switch {
	case err == nil:
		if latest.Type == attendance.EventTypeClockIn && eventType == attendance.EventTypeClockIn {
			return attendance.Event{}, attendance.ErrAlreadyClockedIn
		}
		if latest.Type == attendance.EventTypeClockOut && eventType == attendance.EventTypeClockOut {
			return attendance.Event{}, attendance.ErrNotClockedIn
		}
	case errors.Is(err, attendance.ErrNoEventsForDay):
		if eventType == attendance.EventTypeClockOut {
			return attendance.Event{}, attendance.ErrNotClockedIn
		}
	default:
		return attendance.Event{}, fmt.Errorf("failed to get latest attendance event: %w", err)
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	created, err := s.eventRepo.Append(ctx, attendance.Event{
		EmployeeID: req.EmployeeID,
		Type:       eventType,
		OccurredAt: now,
		Notes:      req.Notes,
		Source:     source,
	})
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return created, nil
}

// CloseDay pairs the day's clock events chronologically, sums worked
// duration, flags time beyond the scheduled shift as overtime and upserts the
// draft timesheet. A trailing unmatched clock-in still produces a best-effort
// partial rollup with the open-entry flag set.
func (s *AggregatorService) CloseDay(ctx context.Context, req attendance.CloseDayRequest) (CloseDayResult, error) {
	if err := req.Validate(); err != nil {
		return CloseDayResult{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	dayStart, dayEnd := dayBounds(date)

	// A posted or approved sheet is final for this flow. Re-closing must not
	// pull it back to draft behind payroll's back.
	existing, err := s.timesheetRepo.Get(ctx, req.EmployeeID, dayStart)
	switch {
	case err == nil:
		if existing.Status != attendance.TimesheetStatusDraft {
			return CloseDayResult{}, attendance.ErrInvalidStatus
		}
	case errors.Is(err, attendance.ErrTimesheetNotFound):
	default:
		return CloseDayResult{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	events, err := s.eventRepo.ListForRange(ctx, req.EmployeeID, dayStart, dayEnd)
	if err != nil {
		return CloseDayResult{}, fmt.Errorf("failed to list attendance events: %w", err)
	}
	if len(events) == 0 {
		return CloseDayResult{}, attendance.ErrNoEventsForDay
	}

	var worked time.Duration
	var openIn *time.Time
	for _, e := range events {
		switch e.Type {
		case attendance.EventTypeClockIn:
			if openIn == nil {
				t := e.OccurredAt
				openIn = &t
			}
		case attendance.EventTypeClockOut:
			if openIn != nil {
				worked += e.OccurredAt.Sub(*openIn)
				openIn = nil
			}
		}
	}
	openEntry := openIn != nil

	workMinutes := int(worked.Minutes())

	shiftMinutes := defaultShiftMinutes
	employment, err := s.employmentRepo.GetActiveByEmployeeID(ctx, req.EmployeeID, date)
	if err == nil && employment.DailyWorkMinutes > 0 {
		shiftMinutes = employment.DailyWorkMinutes
	} else if err != nil && !errors.Is(err, employee.ErrEmploymentNotFound) {
		return CloseDayResult{}, fmt.Errorf("failed to get active employment: %w", err)
	}

	overtimeMinutes := 0
	if workMinutes > shiftMinutes {
		overtimeMinutes = workMinutes - shiftMinutes
	}

	sheet, err := s.timesheetRepo.Upsert(ctx, attendance.Timesheet{
		EmployeeID:      req.EmployeeID,
		WorkDate:        dayStart,
		WorkMinutes:     workMinutes,
		OvertimeMinutes: overtimeMinutes,
		Status:          attendance.TimesheetStatusDraft,
		OpenEntry:       openEntry,
	})
	if err != nil {
		return CloseDayResult{}, fmt.Errorf("failed to upsert timesheet: %w", err)
	}

	return CloseDayResult{Timesheet: sheet, OpenEntry: openEntry}, nil
}

const defaultShiftMinutes = 8 * 60

func (s *AggregatorService) GetTimesheet(ctx context.Context, employeeID string, date time.Time) (attendance.Timesheet, error) {
	dayStart, _ := dayBounds(date)
	return s.timesheetRepo.Get(ctx, employeeID, dayStart)
}

// PostTimesheet moves a draft timesheet to posted, making it eligible for
// payroll consumption.
func (s *AggregatorService) PostTimesheet(ctx context.Context, employeeID string, date time.Time) (attendance.Timesheet, error) {
	dayStart, _ := dayBounds(date)

	sheet, err := s.timesheetRepo.Get(ctx, employeeID, dayStart)
	if err != nil {
		return attendance.Timesheet{}, err
	}

	if sheet.Status != attendance.TimesheetStatusDraft {
		return attendance.Timesheet{}, attendance.ErrInvalidStatus
	}
	if sheet.WorkMinutes == 0 {
		return attendance.Timesheet{}, attendance.ErrNoHoursRecorded
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, sheet.ID, attendance.TimesheetStatusPosted); err != nil {
		return attendance.Timesheet{}, err
	}
	sheet.Status = attendance.TimesheetStatusPosted

	return sheet, nil
}

// ApproveTimesheet moves a posted timesheet to approved.
func (s *AggregatorService) ApproveTimesheet(ctx context.Context, employeeID string, date time.Time) (attendance.Timesheet, error) {
	dayStart, _ := dayBounds(date)

	sheet, err := s.timesheetRepo.Get(ctx, employeeID, dayStart)
	if err != nil {
		return attendance.Timesheet{}, err
	}

	if sheet.Status != attendance.TimesheetStatusPosted {
		return attendance.Timesheet{}, attendance.ErrInvalidStatus
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, sheet.ID, attendance.TimesheetStatusApproved); err != nil {
		return attendance.Timesheet{}, err
	}
	sheet.Status = attendance.TimesheetStatusApproved

	return sheet, nil
}
