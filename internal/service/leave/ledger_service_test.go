package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
)

func provisionTestBalance(t *testing.T, svc *LedgerService, days int) leave.LeaveBalance {
	t.Helper()
	balance, err := svc.Provision(context.Background(), "hr-user", leave.ProvisionBalanceRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-12-31",
		Days:        days,
	})
	require.NoError(t, err)
	return balance
}

func TestLedgerService_Provision_Success(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)

	balance := provisionTestBalance(t, svc, 12)

	assert.Equal(t, 12, balance.BalanceDays)

	audits, err := svc.ListAudits(context.Background(), balance.ID)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, 12, audits[0].DeltaDays)
	assert.Equal(t, 12, audits[0].ResultingDays)
	assert.Equal(t, "provision", audits[0].Reason)
}

func TestLedgerService_Provision_DuplicatePeriod(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)

	provisionTestBalance(t, svc, 12)

	_, err := svc.Provision(context.Background(), "hr-user", leave.ProvisionBalanceRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-12-31",
		Days:        5,
	})
	assert.ErrorIs(t, err, leave.ErrBalanceExists)
}

func TestLedgerService_Debit_Success(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 10)

	on := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	balance, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 3, "leave approval")
	require.NoError(t, err)
	assert.Equal(t, 7, balance.BalanceDays)

	audits, err := svc.ListAudits(context.Background(), balance.ID)
	require.NoError(t, err)
	require.Len(t, audits, 2)
	assert.Equal(t, -3, audits[1].DeltaDays)
	assert.Equal(t, 7, audits[1].ResultingDays)
}

func TestLedgerService_Debit_InsufficientBalance(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 2)

	on := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 3, "leave approval")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The failed debit must not touch the balance.
	balance, err := svc.GetBalance(context.Background(), "employee-1", "type-1", on)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.BalanceDays)
}

func TestLedgerService_Debit_ToExactlyZero(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 3)

	on := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	balance, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 3, "leave approval")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.BalanceDays)

	// The next debit of any size must fail, the ledger never goes negative.
	_, err = svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 1, "leave approval")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLedgerService_Debit_NonPositiveDays(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 10)

	on := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 0, "leave approval")
	assert.ErrorIs(t, err, leave.ErrInvalidDebit)

	_, err = svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, -4, "leave approval")
	assert.ErrorIs(t, err, leave.ErrInvalidDebit)
}

func TestLedgerService_Debit_NoCoveringPeriod(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 10)

	// Outside the provisioned period.
	on := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 1, "leave approval")
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestLedgerService_CreditReversesDebit(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewLedgerService(passthroughTx{}, repo)
	provisionTestBalance(t, svc, 10)

	on := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.Debit(context.Background(), "manager-user", "employee-1", "type-1", on, 4, "leave approval")
	require.NoError(t, err)

	balance, err := svc.Credit(context.Background(), "hr-user", "employee-1", "type-1", on, 4, "leave cancellation")
	require.NoError(t, err)
	assert.Equal(t, 10, balance.BalanceDays)

	audits, err := svc.ListAudits(context.Background(), balance.ID)
	require.NoError(t, err)
	require.Len(t, audits, 3)

	// Audit deltas reconcile with the final balance.
	sum := 0
	for _, a := range audits {
		sum += a.DeltaDays
	}
	assert.Equal(t, balance.BalanceDays, sum)
}
