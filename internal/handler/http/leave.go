package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
	"github.com/workforcehq/workforce-backend-go/internal/handler/http/response"
	leaveservice "github.com/workforcehq/workforce-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	ProvisionBalance(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	ListBalanceAudits(w http.ResponseWriter, r *http.Request)

	SubmitRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	typeService    *leaveservice.TypeService
	ledgerService  *leaveservice.LedgerService
	requestService *leaveservice.RequestService
}

func NewLeaveHandler(
	typeService *leaveservice.TypeService,
	ledgerService *leaveservice.LedgerService,
	requestService *leaveservice.RequestService,
) LeaveHandler {
	return &LeaveHandlerImpl{
		typeService:    typeService,
		ledgerService:  ledgerService,
		requestService: requestService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	created, err := l.typeService.Create(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leave.ToTypeResponse(created))
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	types, err := l.typeService.List(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.TypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, leave.ToTypeResponse(t))
	}

	response.Success(w, resp)
}

// ProvisionBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) ProvisionBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.ProvisionBalanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProvisionBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balance, err := l.ledgerService.Provision(r.Context(), actor.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balance provisioned successfully", leave.ToBalanceResponse(balance))
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok || actor.EmployeeID == nil {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	balances, err := l.ledgerService.GetBalancesByEmployee(r.Context(), *actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.ToBalanceResponse(b))
	}

	response.Success(w, resp)
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balances, err := l.ledgerService.GetBalancesByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.ToBalanceResponse(b))
	}

	response.Success(w, resp)
}

// ListBalanceAudits implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalanceAudits(w http.ResponseWriter, r *http.Request) {
	balanceID := chi.URLParam(r, "balanceID")
	if balanceID == "" {
		response.BadRequest(w, "Balance ID is required", nil)
		return
	}

	audits, err := l.ledgerService.ListAudits(r.Context(), balanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.AuditResponse, 0, len(audits))
	for _, a := range audits {
		resp = append(resp, leave.ToAuditResponse(a))
	}

	response.Success(w, resp)
}

// SubmitRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok || actor.EmployeeID == nil {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	// Requests are always filed for the authenticated employee.
	req.EmployeeID = *actor.EmployeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leave.ToRequestResponse(created))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	req, err := l.requestService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToRequestResponse(req))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok || actor.EmployeeID == nil {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	requests, err := l.requestService.ListByEmployee(r.Context(), *actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, leave.ToRequestResponse(req))
	}

	response.Success(w, resp)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	var status *leave.RequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := leave.RequestStatus(raw)
		status = &s
	}

	requests, err := l.requestService.ListByCompany(r.Context(), companyID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, leave.ToRequestResponse(req))
	}

	response.Success(w, resp)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	approved, err := l.requestService.Approve(r.Context(), requestID, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", leave.ToRequestResponse(approved))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	// The rejection reason is optional, a bodyless reject is fine.
	var req leave.RejectRequestRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	rejected, err := l.requestService.Reject(r.Context(), requestID, actor, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", leave.ToRequestResponse(rejected))
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	cancelled, err := l.requestService.Cancel(r.Context(), requestID, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leave.ToRequestResponse(cancelled))
}
