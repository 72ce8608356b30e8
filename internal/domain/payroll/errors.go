package payroll

import "errors"

var (
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrDuplicateRun         = errors.New("payroll run already exists for this period")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrRunNotDraft          = errors.New("payroll run is not in draft status")
	ErrRunNotLocked         = errors.New("payroll run is not locked")
	ErrAlreadyGenerating    = errors.New("payroll run is being generated by another caller")
	ErrNoPayslips           = errors.New("payroll run has no payslips")
	ErrUnpublishedPayslips  = errors.New("payroll run has unpublished payslips")
	ErrNoActiveEmployments  = errors.New("company has no active employments for this period")
	ErrNegativeNetPay       = errors.New("deductions exceed gross pay")
)
