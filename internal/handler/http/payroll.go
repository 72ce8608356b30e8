package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/payroll"
	"github.com/workforcehq/workforce-backend-go/internal/handler/http/response"
	payrollservice "github.com/workforcehq/workforce-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GenerateRun(w http.ResponseWriter, r *http.Request)
	LockRun(w http.ResponseWriter, r *http.Request)
	PublishRun(w http.ResponseWriter, r *http.Request)
	MarkRunPaid(w http.ResponseWriter, r *http.Request)
	ListItems(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	runService *payrollservice.RunService
}

func NewPayrollHandler(runService *payrollservice.RunService) PayrollHandler {
	return &PayrollHandlerImpl{runService: runService}
}

// CreateRun implements PayrollHandler.
func (p *PayrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRun decode error", "error", err)
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

	run, err := p.runService.CreateRun(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created successfully", payroll.ToRunResponse(run))
}

// GetRun implements PayrollHandler.
func (p *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.GetRun(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRunResponse(run))
}

// ListRuns implements PayrollHandler.
func (p *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	runs, err := p.runService.ListRuns(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, payroll.ToRunResponse(run))
	}

	response.Success(w, resp)
}

// GenerateRun implements PayrollHandler.
func (p *PayrollHandlerImpl) GenerateRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.Generate(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run generated successfully", payroll.ToRunResponse(run))
}

// LockRun implements PayrollHandler.
func (p *PayrollHandlerImpl) LockRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.Lock(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run locked successfully", payroll.ToRunResponse(run))
}

// PublishRun implements PayrollHandler.
func (p *PayrollHandlerImpl) PublishRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.Publish(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips published successfully", payroll.ToRunResponse(run))
}

// MarkRunPaid implements PayrollHandler.
func (p *PayrollHandlerImpl) MarkRunPaid(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.MarkPaid(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run marked as paid", payroll.ToRunResponse(run))
}

// ListItems implements PayrollHandler.
func (p *PayrollHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	items, err := p.runService.ListItems(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]payroll.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, payroll.ToItemResponse(item))
	}

	response.Success(w, resp)
}

// ListPayslips implements PayrollHandler.
func (p *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	payslips, err := p.runService.ListPayslips(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, slip := range payslips {
		resp = append(resp, payroll.ToPayslipResponse(slip))
	}

	response.Success(w, resp)
}
