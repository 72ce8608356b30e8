package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/workforcehq/workforce-backend-go/internal/domain/company"
	"github.com/workforcehq/workforce-backend-go/internal/handler/http/response"
	companyservice "github.com/workforcehq/workforce-backend-go/internal/service/company"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	AddHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService *companyservice.CompanyService
}

func NewCompanyHandler(companyService *companyservice.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Get implements CompanyHandler.
func (c *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	comp, err := c.companyService.GetByID(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.ToCompanyResponse(comp))
}

// AddHoliday implements CompanyHandler.
func (c *CompanyHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req company.AddHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddHoliday decode error", "error", err)
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

	date, _ := time.Parse("2006-01-02", req.Date)

	holiday, err := c.companyService.AddHoliday(r.Context(), companyID, date, req.Name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added successfully", company.ToHolidayResponse(holiday))
}

// ListHolidays implements CompanyHandler.
func (c *CompanyHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	query := r.URL.Query()
	from, err := time.Parse("2006-01-02", query.Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
		return
	}
	to, err := time.Parse("2006-01-02", query.Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
		return
	}

	holidays, err := c.companyService.ListHolidays(r.Context(), companyID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]company.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, company.ToHolidayResponse(h))
	}

	response.Success(w, resp)
}
