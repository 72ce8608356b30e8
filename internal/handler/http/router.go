package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workforcehq/workforce-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", companyHandler.Get)
				r.Get("/holidays", companyHandler.ListHolidays)

				// HR or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/holidays", companyHandler.AddHoliday)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Get("/{employeeID}/leave-balances", leaveHandler.ListBalances)

				// HR or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", employeeHandler.Create)
					r.Post("/{id}/employments", employeeHandler.SupersedeEmployment)
				})

				// Retirement ends the employment history, admins only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/retire", employeeHandler.Retire)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/", leaveHandler.CreateType)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMyBalances)
					r.Get("/{balanceID}/audits", leaveHandler.ListBalanceAudits)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/", leaveHandler.ProvisionBalance)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.SubmitRequest)
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/my", leaveHandler.GetMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
					r.Post("/{id}/cancel", leaveHandler.CancelRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/close-day", attendanceHandler.CloseDay)

				r.Route("/timesheets", func(r chi.Router) {
					r.Get("/{employeeID}/{date}", attendanceHandler.GetTimesheet)
					r.Post("/{employeeID}/{date}/post", attendanceHandler.PostTimesheet)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/{employeeID}/{date}/approve", attendanceHandler.ApproveTimesheet)
					})
				})
			})

			// Payroll is HR or admin territory end to end
			r.Route("/payroll/runs", func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Post("/", payrollHandler.CreateRun)
				r.Get("/", payrollHandler.ListRuns)
				r.Get("/{id}", payrollHandler.GetRun)
				r.Post("/{id}/generate", payrollHandler.GenerateRun)
				r.Post("/{id}/lock", payrollHandler.LockRun)
				r.Post("/{id}/publish", payrollHandler.PublishRun)
				r.Post("/{id}/pay", payrollHandler.MarkRunPaid)
				r.Get("/{id}/items", payrollHandler.ListItems)
				r.Get("/{id}/payslips", payrollHandler.ListPayslips)
			})
		})
	})

	return r
}
