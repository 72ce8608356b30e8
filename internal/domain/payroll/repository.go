package payroll

import (
	"context"
	"time"
)

// RunRepository - interface for payroll_runs, payroll_items and payslips
// tables. Create relies on the unique (company_id, period) index and returns
// ErrDuplicateRun on conflict. GetForUpdate takes the run's row lock with
// NOWAIT so concurrent generators serialize, the loser gets
// ErrAlreadyGenerating.
type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id string) (Run, error)
	GetForUpdate(ctx context.Context, id string) (Run, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Run, error)
	MarkGenerated(ctx context.Context, id string, at time.Time) error
	MarkLocked(ctx context.Context, id string, at time.Time) error
	MarkPaid(ctx context.Context, id string, at time.Time) error

	ReplaceItems(ctx context.Context, runID string, items []Item) error
	ListItems(ctx context.Context, runID string) ([]Item, error)

	ReplacePayslips(ctx context.Context, runID string, payslips []Payslip) error
	ListPayslips(ctx context.Context, runID string) ([]Payslip, error)
	CountPayslips(ctx context.Context, runID string) (int, error)
	CountUnpublishedPayslips(ctx context.Context, runID string) (int, error)
	PublishPayslips(ctx context.Context, runID string, at time.Time) error
	MarkPayslipsPaid(ctx context.Context, runID string, at time.Time) error
}
