package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrBalanceNotFound      = errors.New("no leave balance provisioned for this period")
	ErrBalanceExists        = errors.New("leave balance already provisioned for this period")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrInvalidRange         = errors.New("end date must not be before start date")
	ErrNoWorkingDays        = errors.New("requested range contains no working days")
	ErrOverlappingRequest   = errors.New("an open leave request already covers part of this range")
	ErrInvalidTransition    = errors.New("leave request cannot transition from its current status")
	ErrNotRequester         = errors.New("only the requester may cancel a pending request")
	ErrInvalidDebit         = errors.New("debit amount must be positive")
)
