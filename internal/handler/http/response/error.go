package response

import (
	"errors"
	"net/http"

	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/domain/payroll"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Workflow services never
// log-and-swallow, every typed error surfaces here and becomes a distinct
// status for the caller.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeHasHistory):
		Conflict(w, "Employee has history, retire instead of deleting")
	case errors.Is(err, employee.ErrEmployeeRetired):
		Conflict(w, "Employee is already retired")
	case errors.Is(err, employee.ErrEmploymentNotFound):
		NotFound(w, "No active employment for employee")
	case errors.Is(err, employee.ErrApprovalNotAllowed):
		Forbidden(w, "No approval authority over this employee")
	case errors.Is(err, employee.ErrSelfApproval):
		Forbidden(w, "Cannot approve own request")
	case errors.Is(err, employee.ErrHRAccessRequired):
		Forbidden(w, "HR or admin access required")
	case errors.Is(err, employee.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "No leave balance provisioned for this period")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already provisioned for this period")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An open leave request already covers part of this range")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request cannot transition from its current status")
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the requester may cancel a pending request")
	case errors.Is(err, leave.ErrInvalidDebit):
		BadRequest(w, "Amount must be positive", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Employee is already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Employee is not clocked in")
	case errors.Is(err, attendance.ErrNoEventsForDay):
		NotFound(w, "No attendance events recorded for this day")
	case errors.Is(err, attendance.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, attendance.ErrNoHoursRecorded):
		BadRequest(w, "Timesheet has no hours recorded", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		Conflict(w, "Timesheet cannot transition from its current status")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrDuplicateRun):
		Conflict(w, "Payroll run already exists for this period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrRunNotDraft):
		Conflict(w, "Payroll run is not in draft status")
	case errors.Is(err, payroll.ErrRunNotLocked):
		Conflict(w, "Payroll run is not locked")
	case errors.Is(err, payroll.ErrAlreadyGenerating):
		Conflict(w, "Payroll run is being generated by another caller")
	case errors.Is(err, payroll.ErrNoPayslips):
		Conflict(w, "Payroll run has no payslips")
	case errors.Is(err, payroll.ErrUnpublishedPayslips):
		Conflict(w, "Payroll run has unpublished payslips")
	case errors.Is(err, payroll.ErrNoActiveEmployments):
		BadRequest(w, "Company has no active employments for this period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
