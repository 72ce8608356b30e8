package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
)

type requestFixture struct {
	svc         *RequestService
	ledger      *LedgerService
	balanceRepo *fakeBalanceRepo
	requestRepo *fakeRequestRepo
}

func newRequestFixture(t *testing.T, balanceDays int, holidays map[string]bool) requestFixture {
	t.Helper()

	balanceRepo := &fakeBalanceRepo{}
	requestRepo := &fakeRequestRepo{}
	typeRepo := &fakeLeaveTypeRepo{types: []leave.LeaveType{
		{ID: "type-1", CompanyID: "company-1", Name: "Sick Leave"},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "employee-1", CompanyID: "company-1", Name: "Ann Lee", Code: "E001"},
		{ID: "employee-2", CompanyID: "company-1", Name: "Bob Tan", Code: "E002"},
	}}

	ledger := NewLedgerService(passthroughTx{}, balanceRepo)
	svc := NewRequestService(
		passthroughTx{},
		typeRepo,
		requestRepo,
		employeeRepo,
		ledger,
		staticCalendar{holidays: holidays},
		staticAuthority{allowed: map[string]bool{"employee-2": true}},
	)

	if balanceDays > 0 {
		_, err := ledger.Provision(context.Background(), "hr-user", leave.ProvisionBalanceRequest{
			EmployeeID:  "employee-1",
			LeaveTypeID: "type-1",
			PeriodStart: "2025-01-01",
			PeriodEnd:   "2025-12-31",
			Days:        balanceDays,
		})
		require.NoError(t, err)
	}

	return requestFixture{svc: svc, ledger: ledger, balanceRepo: balanceRepo, requestRepo: requestRepo}
}

func submitTestRequest(t *testing.T, svc *RequestService, start, end string) leave.LeaveRequest {
	t.Helper()
	request, err := svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		StartDate:   start,
		EndDate:     end,
		Reason:      "family matter",
	})
	require.NoError(t, err)
	return request
}

func managerActor() employee.Actor {
	managerEmployeeID := "employee-2"
	return employee.Actor{UserID: "manager-user", EmployeeID: &managerEmployeeID, Role: employee.RoleManager}
}

func requesterActor() employee.Actor {
	requesterEmployeeID := "employee-1"
	return employee.Actor{UserID: "requester-user", EmployeeID: &requesterEmployeeID, Role: employee.RoleEmployee}
}

func TestRequestService_Submit_CountsWorkingDays(t *testing.T) {
	f := newRequestFixture(t, 10, nil)

	// Mon 2025-06-02 .. Wed 2025-06-04.
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	assert.Equal(t, leave.RequestStatusPending, request.Status)
	assert.Equal(t, 3, request.WorkingDays)
	assert.NotNil(t, request.SubmittedAt)
}

func TestRequestService_Submit_SkipsWeekendsAndHolidays(t *testing.T) {
	f := newRequestFixture(t, 10, map[string]bool{"2025-06-02": true})

	// Fri 2025-05-30 .. Tue 2025-06-03: weekend 31/1 and holiday 02 drop out.
	request := submitTestRequest(t, f.svc, "2025-05-30", "2025-06-03")

	assert.Equal(t, 2, request.WorkingDays)
}

func TestRequestService_Submit_InvalidRange(t *testing.T) {
	f := newRequestFixture(t, 10, nil)

	_, err := f.svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		StartDate:   "2025-06-04",
		EndDate:     "2025-06-02",
		Reason:      "backwards",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestRequestService_Submit_NoWorkingDays(t *testing.T) {
	f := newRequestFixture(t, 10, nil)

	// Sat 2025-06-07 .. Sun 2025-06-08.
	_, err := f.svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		StartDate:   "2025-06-07",
		EndDate:     "2025-06-08",
		Reason:      "weekend only",
	})
	assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
}

func TestRequestService_Submit_OverlappingRequest(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-1",
		StartDate:   "2025-06-04",
		EndDate:     "2025-06-06",
		Reason:      "overlaps the first",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestRequestService_Submit_AfterCancelledOverlap(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	first := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Cancel(context.Background(), first.ID, requesterActor())
	require.NoError(t, err)

	// Terminal requests do not block the same range.
	resubmitted := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")
	assert.Equal(t, leave.RequestStatusPending, resubmitted.Status)
}

func TestRequestService_Approve_DebitsBalance(t *testing.T) {
	f := newRequestFixture(t, 3, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	approved, err := f.svc.Approve(context.Background(), request.ID, managerActor())
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "manager-user", *approved.ApprovedBy)

	balance, err := f.ledger.GetBalance(context.Background(), "employee-1", "type-1", request.StartDate)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.BalanceDays)
}

func TestRequestService_Approve_InsufficientBalance(t *testing.T) {
	f := newRequestFixture(t, 2, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Approve(context.Background(), request.ID, managerActor())
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The request stays pending and the balance is untouched.
	unchanged, getErr := f.svc.GetRequest(context.Background(), request.ID)
	require.NoError(t, getErr)
	assert.Equal(t, leave.RequestStatusPending, unchanged.Status)

	balance, balErr := f.ledger.GetBalance(context.Background(), "employee-1", "type-1", request.StartDate)
	require.NoError(t, balErr)
	assert.Equal(t, 2, balance.BalanceDays)
}

func TestRequestService_Approve_SelfApprovalRejected(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Approve(context.Background(), request.ID, requesterActor())
	assert.ErrorIs(t, err, employee.ErrSelfApproval)
}

func TestRequestService_Approve_WithoutAuthority(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	strangerID := "employee-9"
	stranger := employee.Actor{UserID: "stranger-user", EmployeeID: &strangerID, Role: employee.RoleEmployee}

	_, err := f.svc.Approve(context.Background(), request.ID, stranger)
	assert.ErrorIs(t, err, employee.ErrApprovalNotAllowed)
}

func TestRequestService_Approve_AlreadyTerminal(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Reject(context.Background(), request.ID, managerActor(), nil)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), request.ID, managerActor())
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)
}

func TestRequestService_Reject_KeepsBalance(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	reason := "short staffed that week"
	rejected, err := f.svc.Reject(context.Background(), request.ID, managerActor(), &reason)
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	balance, err := f.ledger.GetBalance(context.Background(), "employee-1", "type-1", request.StartDate)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.BalanceDays)
}

func TestRequestService_Cancel_PendingByRequester(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	cancelled, err := f.svc.Cancel(context.Background(), request.ID, requesterActor())
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestRequestService_Cancel_PendingByOther(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Cancel(context.Background(), request.ID, managerActor())
	assert.ErrorIs(t, err, leave.ErrNotRequester)
}

func TestRequestService_Cancel_ApprovedCreditsBack(t *testing.T) {
	f := newRequestFixture(t, 5, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Approve(context.Background(), request.ID, managerActor())
	require.NoError(t, err)

	balance, err := f.ledger.GetBalance(context.Background(), "employee-1", "type-1", request.StartDate)
	require.NoError(t, err)
	require.Equal(t, 2, balance.BalanceDays)

	cancelled, err := f.svc.Cancel(context.Background(), request.ID, managerActor())
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusCancelled, cancelled.Status)

	balance, err = f.ledger.GetBalance(context.Background(), "employee-1", "type-1", request.StartDate)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.BalanceDays)
}

func TestRequestService_Cancel_TerminalRejected(t *testing.T) {
	f := newRequestFixture(t, 10, nil)
	request := submitTestRequest(t, f.svc, "2025-06-02", "2025-06-04")

	_, err := f.svc.Cancel(context.Background(), request.ID, requesterActor())
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), request.ID, requesterActor())
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)
}
