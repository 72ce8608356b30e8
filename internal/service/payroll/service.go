package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/domain/payroll"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

// Overtime is paid at time-and-a-half of the per-minute base rate.
var overtimeMultiplier = decimal.NewFromFloat(1.5)

// RunService drives the payroll run lifecycle:
// draft -> (generate) -> draft -> locked -> paid. No transition returns a run
// from locked or paid back to draft, corrections require a new run.
type RunService struct {
	tx             database.Transactor
	runRepo        payroll.RunRepository
	employmentRepo employee.EmploymentRepository
	timesheetRepo  attendance.TimesheetRepository
}

func NewRunService(
	tx database.Transactor,
	runRepo payroll.RunRepository,
	employmentRepo employee.EmploymentRepository,
	timesheetRepo attendance.TimesheetRepository,
) *RunService {
	return &RunService{
		tx:             tx,
		runRepo:        runRepo,
		employmentRepo: employmentRepo,
		timesheetRepo:  timesheetRepo,
	}
}

func (s *RunService) CreateRun(ctx context.Context, companyID string, req payroll.CreateRunRequest) (payroll.Run, error) {
	if err := req.Validate(); err != nil {
		return payroll.Run{}, err
	}

	return s.runRepo.Create(ctx, payroll.Run{
		CompanyID: companyID,
		Period:    req.Period,
		Status:    payroll.RunStatusDraft,
	})
}

func (s *RunService) GetRun(ctx context.Context, runID string) (payroll.Run, error) {
	return s.runRepo.GetByID(ctx, runID)
}

func (s *RunService) ListRuns(ctx context.Context, companyID string) ([]payroll.Run, error) {
	return s.runRepo.ListByCompanyID(ctx, companyID)
}

func (s *RunService) ListItems(ctx context.Context, runID string) ([]payroll.Item, error) {
	return s.runRepo.ListItems(ctx, runID)
}

func (s *RunService) ListPayslips(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	return s.runRepo.ListPayslips(ctx, runID)
}

// periodBounds resolves a "2006-01" period to its first and last day.
func periodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, payroll.ErrInvalidPeriod
	}
	return start, start.AddDate(0, 1, -1), nil
}

// weekdaysBetween counts Monday..Friday dates in [start, end], the scheduled
// working days the base rate is spread across.
func weekdaysBetween(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

// Generate populates a draft run with items and payslips. The whole pass runs
// in one transaction holding the run's row lock, a concurrent generate on the
// same run fails with ErrAlreadyGenerating, and a failure partway leaves no
// partial payslip set. Regenerating before lock replaces prior output.
func (s *RunService) Generate(ctx context.Context, runID string) (payroll.Run, error) {
	var run payroll.Run
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		run, err = s.runRepo.GetForUpdate(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status != payroll.RunStatusDraft {
			return payroll.ErrRunNotDraft
		}

		periodStart, periodEnd, err := periodBounds(run.Period)
		if err != nil {
			return err
		}

		employments, err := s.employmentRepo.ListActiveByCompanyID(ctx, run.CompanyID, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list active employments: %w", err)
		}
		if len(employments) == 0 {
			return payroll.ErrNoActiveEmployments
		}

		sheets, err := s.timesheetRepo.ListPostedByCompanyAndRange(ctx, run.CompanyID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list posted timesheets: %w", err)
		}
		overtimeByEmployee := make(map[string]int)
		for _, sheet := range sheets {
			overtimeByEmployee[sheet.EmployeeID] += sheet.OvertimeMinutes
		}

		var items []payroll.Item
		var payslips []payroll.Payslip
		for _, emp := range employments {
			base := prorateBase(emp, periodStart, periodEnd)

			empItems := []payroll.Item{{
				RunID:      run.ID,
				EmployeeID: emp.EmployeeID,
				Component:  "base_salary",
				Type:       payroll.ItemTypeEarning,
				Amount:     base,
			}}

			if overtime := overtimeByEmployee[emp.EmployeeID]; overtime > 0 {
				premium := overtimePremium(emp, periodStart, periodEnd, overtime)
				if premium.IsPositive() {
					empItems = append(empItems, payroll.Item{
						RunID:      run.ID,
						EmployeeID: emp.EmployeeID,
						Component:  "overtime",
						Type:       payroll.ItemTypeEarning,
						Amount:     premium,
					})
				}
			}

			gross := decimal.Zero
			deductions := decimal.Zero
			for _, item := range empItems {
				switch item.Type {
				case payroll.ItemTypeEarning:
					gross = gross.Add(item.Amount)
				case payroll.ItemTypeDeduction:
					deductions = deductions.Add(item.Amount)
				}
			}
			net := gross.Sub(deductions)
			if net.IsNegative() {
				return payroll.ErrNegativeNetPay
			}

			items = append(items, empItems...)
			payslips = append(payslips, payroll.Payslip{
				RunID:      run.ID,
				EmployeeID: emp.EmployeeID,
				GrossPay:   gross,
				Deductions: deductions,
				NetPay:     net,
			})
		}

		if err := s.runRepo.ReplaceItems(ctx, run.ID, items); err != nil {
			return err
		}
		if err := s.runRepo.ReplacePayslips(ctx, run.ID, payslips); err != nil {
			return err
		}

		generatedAt := time.Now()
		if err := s.runRepo.MarkGenerated(ctx, run.ID, generatedAt); err != nil {
			return err
		}
		run.GeneratedAt = &generatedAt
		return nil
	})
	if err != nil {
		return payroll.Run{}, err
	}

	return run, nil
}

// prorateBase returns the period's base salary, scaled down when the
// employment became effective mid-period.
func prorateBase(emp employee.Employment, periodStart, periodEnd time.Time) decimal.Decimal {
	if !emp.EffectiveDate.After(periodStart) {
		return emp.BaseSalary.Round(2)
	}

	totalDays := int(periodEnd.Sub(periodStart).Hours()/24) + 1
	activeDays := int(periodEnd.Sub(emp.EffectiveDate).Hours()/24) + 1
	if activeDays <= 0 {
		return decimal.Zero
	}

	return emp.BaseSalary.
		Mul(decimal.NewFromInt(int64(activeDays))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2)
}

// overtimePremium prices overtime minutes at the per-minute base rate times
// the overtime multiplier.
func overtimePremium(emp employee.Employment, periodStart, periodEnd time.Time, overtimeMinutes int) decimal.Decimal {
	dailyMinutes := emp.DailyWorkMinutes
	if dailyMinutes <= 0 {
		dailyMinutes = 8 * 60
	}
	scheduledMinutes := weekdaysBetween(periodStart, periodEnd) * dailyMinutes
	if scheduledMinutes == 0 {
		return decimal.Zero
	}

	perMinute := emp.BaseSalary.Div(decimal.NewFromInt(int64(scheduledMinutes)))
	return perMinute.
		Mul(decimal.NewFromInt(int64(overtimeMinutes))).
		Mul(overtimeMultiplier).
		Round(2)
}

// Lock freezes a generated draft run against further generation.
func (s *RunService) Lock(ctx context.Context, runID string) (payroll.Run, error) {
	var run payroll.Run
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		run, err = s.runRepo.GetForUpdate(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status != payroll.RunStatusDraft {
			return payroll.ErrRunNotDraft
		}

		count, err := s.runRepo.CountPayslips(ctx, run.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return payroll.ErrNoPayslips
		}

		lockedAt := time.Now()
		if err := s.runRepo.MarkLocked(ctx, run.ID, lockedAt); err != nil {
			return err
		}
		run.Status = payroll.RunStatusLocked
		run.LockedAt = &lockedAt
		return nil
	})
	if err != nil {
		return payroll.Run{}, err
	}

	return run, nil
}

// Publish stamps publishedAt on every payslip of a locked run. It does not
// change the run status and may be called repeatedly.
func (s *RunService) Publish(ctx context.Context, runID string) (payroll.Run, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.Run{}, err
	}
	if run.Status != payroll.RunStatusLocked && run.Status != payroll.RunStatusPaid {
		return payroll.Run{}, payroll.ErrRunNotLocked
	}

	if err := s.runRepo.PublishPayslips(ctx, runID, time.Now()); err != nil {
		return payroll.Run{}, err
	}

	return run, nil
}

// MarkPaid moves a locked run to paid and stamps paidAt on its payslips.
// Every payslip must have been published first.
func (s *RunService) MarkPaid(ctx context.Context, runID string) (payroll.Run, error) {
	var run payroll.Run
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		run, err = s.runRepo.GetForUpdate(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status != payroll.RunStatusLocked {
			return payroll.ErrRunNotLocked
		}

		unpublished, err := s.runRepo.CountUnpublishedPayslips(ctx, run.ID)
		if err != nil {
			return err
		}
		if unpublished > 0 {
			return payroll.ErrUnpublishedPayslips
		}

		paidAt := time.Now()
		if err := s.runRepo.MarkPayslipsPaid(ctx, run.ID, paidAt); err != nil {
			return err
		}
		if err := s.runRepo.MarkPaid(ctx, run.ID, paidAt); err != nil {
			return err
		}
		run.Status = payroll.RunStatusPaid
		run.PaidAt = &paidAt
		return nil
	})
	if err != nil {
		return payroll.Run{}, err
	}

	return run, nil
}
