package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrEmployeeHasHistory  = errors.New("employee has history and cannot be deleted, retire instead")
	ErrEmployeeRetired     = errors.New("employee is already retired")
	ErrEmploymentNotFound  = errors.New("no active employment for employee")
	ErrNegativeBaseSalary  = errors.New("base salary must not be negative")
	ErrApprovalNotAllowed  = errors.New("actor has no approval authority over this employee")
	ErrSelfApproval        = errors.New("cannot approve own request")
	ErrHRAccessRequired    = errors.New("hr or admin access required")
	ErrAdminAccessRequired = errors.New("admin access required")
)
