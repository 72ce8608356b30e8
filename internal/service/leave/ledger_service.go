package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

// LedgerService is the only writer of leave balances. Every mutation appends
// an audit record (who, delta, resulting balance) in the same transaction as
// the balance change.
type LedgerService struct {
	tx          database.Transactor
	balanceRepo leave.LeaveBalanceRepository
}

func NewLedgerService(tx database.Transactor, balanceRepo leave.LeaveBalanceRepository) *LedgerService {
	return &LedgerService{
		tx:          tx,
		balanceRepo: balanceRepo,
	}
}

func (s *LedgerService) GetBalance(ctx context.Context, employeeID, leaveTypeID string, on time.Time) (leave.LeaveBalance, error) {
	return s.balanceRepo.GetForDate(ctx, employeeID, leaveTypeID, on)
}

func (s *LedgerService) GetBalancesByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	return s.balanceRepo.GetByEmployeeID(ctx, employeeID)
}

func (s *LedgerService) ListAudits(ctx context.Context, balanceID string) ([]leave.BalanceAudit, error) {
	return s.balanceRepo.ListAudits(ctx, balanceID)
}

// Provision opens a balance row for a new period, typically at fiscal-year
// start.
func (s *LedgerService) Provision(ctx context.Context, actorID string, req leave.ProvisionBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	var provisioned leave.LeaveBalance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		provisioned, err = s.balanceRepo.Provision(ctx, leave.LeaveBalance{
			EmployeeID:  req.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			BalanceDays: req.Days,
		})
		if err != nil {
			return err
		}

		return s.balanceRepo.AppendAudit(ctx, leave.BalanceAudit{
			BalanceID:     provisioned.ID,
			ActorID:       actorID,
			DeltaDays:     req.Days,
			ResultingDays: provisioned.BalanceDays,
			Reason:        "provision",
		})
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return provisioned, nil
}

// Debit atomically decrements the balance covering the given date. The check
// and decrement are a single conditional update, two concurrent debits of the
// same row cannot both succeed if their sum exceeds the balance.
func (s *LedgerService) Debit(ctx context.Context, actorID, employeeID, leaveTypeID string, on time.Time, days int, reason string) (leave.LeaveBalance, error) {
	if days <= 0 {
		return leave.LeaveBalance{}, leave.ErrInvalidDebit
	}

	var debited leave.LeaveBalance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		debited, err = s.balanceRepo.Debit(ctx, employeeID, leaveTypeID, on, days)
		if err != nil {
			return err
		}

		return s.balanceRepo.AppendAudit(ctx, leave.BalanceAudit{
			BalanceID:     debited.ID,
			ActorID:       actorID,
			DeltaDays:     -days,
			ResultingDays: debited.BalanceDays,
			Reason:        reason,
		})
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return debited, nil
}

// Credit increments the balance, used to reverse a debit on cancellation.
// No upper bound is enforced, accrual policy is an external concern.
func (s *LedgerService) Credit(ctx context.Context, actorID, employeeID, leaveTypeID string, on time.Time, days int, reason string) (leave.LeaveBalance, error) {
	if days <= 0 {
		return leave.LeaveBalance{}, leave.ErrInvalidDebit
	}

	var credited leave.LeaveBalance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		credited, err = s.balanceRepo.Credit(ctx, employeeID, leaveTypeID, on, days)
		if err != nil {
			return fmt.Errorf("failed to credit leave balance: %w", err)
		}

		return s.balanceRepo.AppendAudit(ctx, leave.BalanceAudit{
			BalanceID:     credited.ID,
			ActorID:       actorID,
			DeltaDays:     days,
			ResultingDays: credited.BalanceDays,
			Reason:        reason,
		})
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return credited, nil
}
