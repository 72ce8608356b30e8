package main

import (
	"fmt"
	"net/http"

	"github.com/workforcehq/workforce-backend-go/internal/config"
	appHTTP "github.com/workforcehq/workforce-backend-go/internal/handler/http"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
	"github.com/workforcehq/workforce-backend-go/internal/pkg/jwt"
	"github.com/workforcehq/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workforcehq/workforce-backend-go/internal/service/attendance"
	companyService "github.com/workforcehq/workforce-backend-go/internal/service/company"
	employeeService "github.com/workforcehq/workforce-backend-go/internal/service/employee"
	leaveService "github.com/workforcehq/workforce-backend-go/internal/service/leave"
	payrollService "github.com/workforcehq/workforce-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	employmentRepo := postgresql.NewEmploymentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceEventRepo := postgresql.NewAttendanceEventRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	companySvc := companyService.NewCompanyService(companyRepo, holidayRepo)
	authoritySvc := employeeService.NewAuthorityService(employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, employmentRepo)
	typeSvc := leaveService.NewTypeService(leaveTypeRepo)
	ledgerSvc := leaveService.NewLedgerService(db, leaveBalanceRepo)
	requestSvc := leaveService.NewRequestService(db, leaveTypeRepo, leaveRequestRepo, employeeRepo, ledgerSvc, companySvc, authoritySvc)
	aggregatorSvc := attendanceService.NewAggregatorService(attendanceEventRepo, timesheetRepo, employmentRepo)
	runSvc := payrollService.NewRunService(db, payrollRunRepo, employmentRepo, timesheetRepo)

	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(typeSvc, ledgerSvc, requestSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(aggregatorSvc)
	payrollHandler := appHTTP.NewPayrollHandler(runSvc)

	router := appHTTP.NewRouter(
		jwtService,
		companyHandler,
		employeeHandler,
		leaveHandler,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
