package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

// RequestService drives the leave request lifecycle:
// pending -> approved/rejected, pending/approved -> cancelled. Approval
// debits the ledger, administrative cancellation of an approved request
// credits it back. Terminal states admit no further transitions.
type RequestService struct {
	tx            database.Transactor
	leaveTypeRepo leave.LeaveTypeRepository
	requestRepo   leave.LeaveRequestRepository
	employeeRepo  employee.EmployeeRepository
	ledger        *LedgerService
	calendar      company.HolidayCalendar
	authority     employee.ApprovalAuthority
}

func NewRequestService(
	tx database.Transactor,
	leaveTypeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	ledger *LedgerService,
	calendar company.HolidayCalendar,
	authority employee.ApprovalAuthority,
) *RequestService {
	return &RequestService{
		tx:            tx,
		leaveTypeRepo: leaveTypeRepo,
		requestRepo:   requestRepo,
		employeeRepo:  employeeRepo,
		ledger:        ledger,
		calendar:      calendar,
		authority:     authority,
	}
}

func (s *RequestService) Submit(ctx context.Context, req leave.SubmitRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.CompanyID != emp.CompanyID {
		return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if endDate.Before(startDate) {
		return leave.LeaveRequest{}, leave.ErrInvalidRange
	}

	workingDays, err := countWorkingDays(ctx, s.calendar, emp.CompanyID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if workingDays == 0 {
		return leave.LeaveRequest{}, leave.ErrNoWorkingDays
	}

	hasOverlap, err := s.requestRepo.HasOpenOverlap(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingRequest
	}

	now := time.Now()
	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		WorkingDays: workingDays,
		Reason:      req.Reason,
		Status:      leave.RequestStatusPending,
		SubmittedAt: &now,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// Approve debits the covering balance and marks the request approved in one
// transaction. If the debit fails with ErrInsufficientBalance the request
// stays pending, there is no partial state.
func (s *RequestService) Approve(ctx context.Context, requestID string, actor employee.Actor) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.RequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}

	if err := s.checkAuthority(ctx, actor, request.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	approvedAt := time.Now()
	approverID := actor.UserID
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ledger.Debit(ctx, approverID, request.EmployeeID, request.LeaveTypeID, request.StartDate, request.WorkingDays, "leave approval"); err != nil {
			return err
		}

		request.Status = leave.RequestStatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &approvedAt
		return s.requestRepo.Update(ctx, request)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (s *RequestService) Reject(ctx context.Context, requestID string, actor employee.Actor, reason *string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.RequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}

	if err := s.checkAuthority(ctx, actor, request.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	rejectedAt := time.Now()
	approverID := actor.UserID
	request.Status = leave.RequestStatusRejected
	request.ApprovedBy = &approverID
	request.ApprovedAt = &rejectedAt
	request.RejectionReason = reason

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// Cancel moves a pending or approved request to cancelled. A pending request
// may only be cancelled by its requester; cancelling an approved request is
// an administrative reversal that credits the ledger back.
func (s *RequestService) Cancel(ctx context.Context, requestID string, actor employee.Actor) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	cancelledAt := time.Now()
	actorID := actor.UserID

	switch request.Status {
	case leave.RequestStatusPending:
		isRequester := actor.EmployeeID != nil && *actor.EmployeeID == request.EmployeeID
		if !isRequester {
			return leave.LeaveRequest{}, leave.ErrNotRequester
		}

		request.Status = leave.RequestStatusCancelled
		request.CancelledBy = &actorID
		request.CancelledAt = &cancelledAt
		if err := s.requestRepo.Update(ctx, request); err != nil {
			return leave.LeaveRequest{}, err
		}
		return request, nil

	case leave.RequestStatusApproved:
		if err := s.checkAuthority(ctx, actor, request.EmployeeID); err != nil {
			return leave.LeaveRequest{}, err
		}

		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := s.ledger.Credit(ctx, actorID, request.EmployeeID, request.LeaveTypeID, request.StartDate, request.WorkingDays, "leave cancellation"); err != nil {
				return err
			}

			request.Status = leave.RequestStatusCancelled
			request.CancelledBy = &actorID
			request.CancelledAt = &cancelledAt
			return s.requestRepo.Update(ctx, request)
		})
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		return request, nil

	default:
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}
}

func (s *RequestService) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.requestRepo.GetByEmployeeID(ctx, employeeID)
}

func (s *RequestService) ListByCompany(ctx context.Context, companyID string, status *leave.RequestStatus) ([]leave.LeaveRequest, error) {
	return s.requestRepo.GetByCompanyID(ctx, companyID, status)
}

func (s *RequestService) checkAuthority(ctx context.Context, actor employee.Actor, employeeID string) error {
	if actor.EmployeeID != nil && *actor.EmployeeID == employeeID {
		return employee.ErrSelfApproval
	}

	allowed, err := s.authority.HasApprovalAuthority(ctx, actor.EmployeeID, actor.Role, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check approval authority: %w", err)
	}
	if !allowed {
		return employee.ErrApprovalNotAllowed
	}

	return nil
}
