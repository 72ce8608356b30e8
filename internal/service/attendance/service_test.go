package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (r *fakeEventRepo) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	event.CreatedAt = time.Now()
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeEventRepo) inRange(employeeID string, from, to time.Time) []attendance.Event {
	var out []attendance.Event
	for _, e := range r.events {
		if e.EmployeeID == employeeID && !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	return out
}

func (r *fakeEventRepo) LatestForRange(ctx context.Context, employeeID string, from, to time.Time) (attendance.Event, error) {
	events := r.inRange(employeeID, from, to)
	if len(events) == 0 {
		return attendance.Event{}, attendance.ErrNoEventsForDay
	}
	return events[len(events)-1], nil
}

func (r *fakeEventRepo) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	return r.inRange(employeeID, from, to), nil
}

type fakeTimesheetRepo struct {
	sheets []attendance.Timesheet
}

func (r *fakeTimesheetRepo) Upsert(ctx context.Context, sheet attendance.Timesheet) (attendance.Timesheet, error) {
	for i := range r.sheets {
		if r.sheets[i].EmployeeID == sheet.EmployeeID && r.sheets[i].WorkDate.Equal(sheet.WorkDate) {
			sheet.ID = r.sheets[i].ID
			r.sheets[i] = sheet
			return sheet, nil
		}
	}
	sheet.ID = fmt.Sprintf("timesheet-%d", len(r.sheets)+1)
	r.sheets = append(r.sheets, sheet)
	return sheet, nil
}

func (r *fakeTimesheetRepo) Get(ctx context.Context, employeeID string, workDate time.Time) (attendance.Timesheet, error) {
	for _, s := range r.sheets {
		if s.EmployeeID == employeeID && s.WorkDate.Equal(workDate) {
			return s, nil
		}
	}
	return attendance.Timesheet{}, attendance.ErrTimesheetNotFound
}

func (r *fakeTimesheetRepo) UpdateStatus(ctx context.Context, id string, status attendance.TimesheetStatus) error {
	for i := range r.sheets {
		if r.sheets[i].ID == id {
			r.sheets[i].Status = status
			return nil
		}
	}
	return attendance.ErrTimesheetNotFound
}

func (r *fakeTimesheetRepo) ListPostedByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.Timesheet, error) {
	var out []attendance.Timesheet
	for _, s := range r.sheets {
		if s.Status != attendance.TimesheetStatusDraft {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeEmploymentRepo struct {
	employments []employee.Employment
}

func (r *fakeEmploymentRepo) Create(ctx context.Context, employment employee.Employment) (employee.Employment, error) {
	employment.ID = fmt.Sprintf("employment-%d", len(r.employments)+1)
	r.employments = append(r.employments, employment)
	return employment, nil
}

func (r *fakeEmploymentRepo) GetActiveByEmployeeID(ctx context.Context, employeeID string, asOf time.Time) (employee.Employment, error) {
	for _, e := range r.employments {
		if e.EmployeeID == employeeID && e.SupersededAt == nil {
			return e, nil
		}
	}
	return employee.Employment{}, employee.ErrEmploymentNotFound
}

func (r *fakeEmploymentRepo) ListActiveByCompanyID(ctx context.Context, companyID string, asOf time.Time) ([]employee.Employment, error) {
	var out []employee.Employment
	for _, e := range r.employments {
		if e.SupersededAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmploymentRepo) Supersede(ctx context.Context, id string, at time.Time) error {
	for i := range r.employments {
		if r.employments[i].ID == id {
			r.employments[i].SupersededAt = &at
			return nil
		}
	}
	return employee.ErrEmploymentNotFound
}

func newAggregatorFixture(dailyMinutes int) (*AggregatorService, *fakeEventRepo, *fakeTimesheetRepo) {
	eventRepo := &fakeEventRepo{}
	timesheetRepo := &fakeTimesheetRepo{}
	employmentRepo := &fakeEmploymentRepo{}
	if dailyMinutes > 0 {
		employmentRepo.employments = append(employmentRepo.employments, employee.Employment{
			ID:               "employment-1",
			EmployeeID:       "employee-1",
			DailyWorkMinutes: dailyMinutes,
		})
	}
	return NewAggregatorService(eventRepo, timesheetRepo, employmentRepo), eventRepo, timesheetRepo
}

// appendEvents seeds the event log directly, bypassing RecordEvent so tests
// control the timestamps.
func appendEvents(repo *fakeEventRepo, day time.Time, pairs ...[2]int) {
	for _, p := range pairs {
		repo.events = append(repo.events, attendance.Event{
			ID:         fmt.Sprintf("event-%d", len(repo.events)+1),
			EmployeeID: "employee-1",
			Type:       attendance.EventTypeClockIn,
			OccurredAt: day.Add(time.Duration(p[0]) * time.Minute),
		})
		if p[1] >= 0 {
			repo.events = append(repo.events, attendance.Event{
				ID:         fmt.Sprintf("event-%d", len(repo.events)+1),
				EmployeeID: "employee-1",
				Type:       attendance.EventTypeClockOut,
				OccurredAt: day.Add(time.Duration(p[1]) * time.Minute),
			})
		}
	}
}

func TestAggregatorService_RecordEvent_ClockInThenOut(t *testing.T) {
	svc, _, _ := newAggregatorFixture(480)

	in, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockIn),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.EventTypeClockIn, in.Type)
	assert.Equal(t, "api", in.Source)

	out, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockOut),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.EventTypeClockOut, out.Type)
}

func TestAggregatorService_RecordEvent_DuplicateClockIn(t *testing.T) {
	svc, _, _ := newAggregatorFixture(480)

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockIn),
	})
	require.NoError(t, err)

	_, err = svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockIn),
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAggregatorService_RecordEvent_ClockOutWithoutClockIn(t *testing.T) {
	svc, _, _ := newAggregatorFixture(480)

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockOut),
	})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAggregatorService_CloseDay_PairsEvents(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 09:00-12:00 and 13:00-18:00, 480 worked minutes.
	appendEvents(eventRepo, day, [2]int{9 * 60, 12 * 60}, [2]int{13 * 60, 18 * 60})

	result, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 480, result.Timesheet.WorkMinutes)
	assert.Equal(t, 0, result.Timesheet.OvertimeMinutes)
	assert.Equal(t, attendance.TimesheetStatusDraft, result.Timesheet.Status)
	assert.False(t, result.OpenEntry)
}

func TestAggregatorService_CloseDay_Overtime(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 08:00-18:00, 600 worked minutes against a 480 minute shift.
	appendEvents(eventRepo, day, [2]int{8 * 60, 18 * 60})

	result, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 600, result.Timesheet.WorkMinutes)
	assert.Equal(t, 120, result.Timesheet.OvertimeMinutes)
}

func TestAggregatorService_CloseDay_OpenEntry(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 09:00-12:00 closed, then a 13:00 clock-in never matched.
	appendEvents(eventRepo, day, [2]int{9 * 60, 12 * 60}, [2]int{13 * 60, -1})

	result, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.True(t, result.OpenEntry)
	assert.True(t, result.Timesheet.OpenEntry)
	assert.Equal(t, 180, result.Timesheet.WorkMinutes)
}

func TestAggregatorService_CloseDay_NoEvents(t *testing.T) {
	svc, _, _ := newAggregatorFixture(480)

	_, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       "2025-06-02",
	})
	assert.ErrorIs(t, err, attendance.ErrNoEventsForDay)
}

func TestAggregatorService_CloseDay_Idempotent(t *testing.T) {
	svc, eventRepo, timesheetRepo := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appendEvents(eventRepo, day, [2]int{9 * 60, 17 * 60})

	req := attendance.CloseDayRequest{EmployeeID: "employee-1", Date: "2025-06-02"}

	first, err := svc.CloseDay(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.CloseDay(context.Background(), req)
	require.NoError(t, err)

	// Same day closes to the same row, not a duplicate.
	assert.Equal(t, first.Timesheet.ID, second.Timesheet.ID)
	assert.Len(t, timesheetRepo.sheets, 1)
}

func TestAggregatorService_CloseDay_PostedSheetStaysPosted(t *testing.T) {
	svc, eventRepo, timesheetRepo := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appendEvents(eventRepo, day, [2]int{9 * 60, 17 * 60})

	req := attendance.CloseDayRequest{EmployeeID: "employee-1", Date: "2025-06-02"}

	_, err := svc.CloseDay(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.PostTimesheet(context.Background(), "employee-1", day)
	require.NoError(t, err)

	// Re-closing must not pull the posted sheet back to draft.
	_, err = svc.CloseDay(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	sheet, err := svc.GetTimesheet(context.Background(), "employee-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.TimesheetStatusPosted, sheet.Status)
	assert.Len(t, timesheetRepo.sheets, 1)
}

func TestAggregatorService_CloseDay_SeesRecordedEvents(t *testing.T) {
	svc, _, _ := newAggregatorFixture(480)

	// Record through the service rather than seeding the log, so the event
	// and the rollup have to agree on which day "now" belongs to.
	in, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "employee-1",
		Type:       string(attendance.EventTypeClockIn),
	})
	require.NoError(t, err)

	result, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       in.OccurredAt.Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.True(t, result.OpenEntry)
}

func TestAggregatorService_PostTimesheet(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appendEvents(eventRepo, day, [2]int{9 * 60, 17 * 60})

	_, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{EmployeeID: "employee-1", Date: "2025-06-02"})
	require.NoError(t, err)

	posted, err := svc.PostTimesheet(context.Background(), "employee-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.TimesheetStatusPosted, posted.Status)

	// Posting twice is an invalid transition.
	_, err = svc.PostTimesheet(context.Background(), "employee-1", day)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestAggregatorService_PostTimesheet_NoHours(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// A single instant pair rolls up to zero minutes.
	appendEvents(eventRepo, day, [2]int{9 * 60, 9 * 60})

	_, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{EmployeeID: "employee-1", Date: "2025-06-02"})
	require.NoError(t, err)

	_, err = svc.PostTimesheet(context.Background(), "employee-1", day)
	assert.ErrorIs(t, err, attendance.ErrNoHoursRecorded)
}

func TestAggregatorService_ApproveTimesheet(t *testing.T) {
	svc, eventRepo, _ := newAggregatorFixture(480)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appendEvents(eventRepo, day, [2]int{9 * 60, 17 * 60})

	_, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{EmployeeID: "employee-1", Date: "2025-06-02"})
	require.NoError(t, err)

	// Approving a draft skips the posted step and is rejected.
	_, err = svc.ApproveTimesheet(context.Background(), "employee-1", day)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	_, err = svc.PostTimesheet(context.Background(), "employee-1", day)
	require.NoError(t, err)

	approved, err := svc.ApproveTimesheet(context.Background(), "employee-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.TimesheetStatusApproved, approved.Status)
}

func TestAggregatorService_CloseDay_DefaultShift(t *testing.T) {
	// No employment on file, the 8 hour default shift applies.
	svc, eventRepo, _ := newAggregatorFixture(0)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appendEvents(eventRepo, day, [2]int{9 * 60, 18 * 60})

	result, err := svc.CloseDay(context.Background(), attendance.CloseDayRequest{
		EmployeeID: "employee-1",
		Date:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 540, result.Timesheet.WorkMinutes)
	assert.Equal(t, 60, result.Timesheet.OvertimeMinutes)
}
