package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/attendance"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
	"github.com/workforcehq/workforce-backend-go/internal/handler/http/response"
	attendanceservice "github.com/workforcehq/workforce-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	CloseDay(w http.ResponseWriter, r *http.Request)
	GetTimesheet(w http.ResponseWriter, r *http.Request)
	PostTimesheet(w http.ResponseWriter, r *http.Request)
	ApproveTimesheet(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	aggregatorService *attendanceservice.AggregatorService
}

func NewAttendanceHandler(aggregatorService *attendanceservice.AggregatorService) AttendanceHandler {
	return &AttendanceHandlerImpl{aggregatorService: aggregatorService}
}

type closeDayResponse struct {
	Timesheet attendance.TimesheetResponse `json:"timesheet"`
	OpenEntry bool                         `json:"open_entry"`
}

func (a *AttendanceHandlerImpl) recordEvent(w http.ResponseWriter, r *http.Request, eventType attendance.EventType) {
	var req attendance.RecordEventRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("recordEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok || actor.EmployeeID == nil {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	// Clock events are always recorded against the authenticated employee.
	req.EmployeeID = *actor.EmployeeID
	req.Type = string(eventType)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := a.aggregatorService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event recorded successfully", attendance.ToEventResponse(event))
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	a.recordEvent(w, r, attendance.EventTypeClockIn)
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	a.recordEvent(w, r, attendance.EventTypeClockOut)
}

// CloseDay implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CloseDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.CloseDayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CloseDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.aggregatorService.CloseDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day closed successfully", closeDayResponse{
		Timesheet: attendance.ToTimesheetResponse(result.Timesheet),
		OpenEntry: result.OpenEntry,
	})
}

func timesheetParams(r *http.Request) (string, time.Time, error) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		return "", time.Time{}, employee.ErrEmployeeNotFound
	}

	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		return "", time.Time{}, err
	}

	return employeeID, date, nil
}

// GetTimesheet implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := timesheetParams(r)
	if err != nil {
		response.BadRequest(w, "Employee ID and a YYYY-MM-DD date are required", nil)
		return
	}

	sheet, err := a.aggregatorService.GetTimesheet(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToTimesheetResponse(sheet))
}

// PostTimesheet implements AttendanceHandler.
func (a *AttendanceHandlerImpl) PostTimesheet(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := timesheetParams(r)
	if err != nil {
		response.BadRequest(w, "Employee ID and a YYYY-MM-DD date are required", nil)
		return
	}

	sheet, err := a.aggregatorService.PostTimesheet(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet posted successfully", attendance.ToTimesheetResponse(sheet))
}

// ApproveTimesheet implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := timesheetParams(r)
	if err != nil {
		response.BadRequest(w, "Employee ID and a YYYY-MM-DD date are required", nil)
		return
	}

	sheet, err := a.aggregatorService.ApproveTimesheet(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved successfully", attendance.ToTimesheetResponse(sheet))
}
