package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wagestack/payroll-backend-go/internal/config"
	appHTTP "github.com/wagestack/payroll-backend-go/internal/handler/http"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/jwt"
	"github.com/wagestack/payroll-backend-go/internal/repository/postgresql"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	absenceService "github.com/wagestack/payroll-backend-go/internal/service/absence"
	adjustmentService "github.com/wagestack/payroll-backend-go/internal/service/adjustment"
	loanService "github.com/wagestack/payroll-backend-go/internal/service/loan"
	payrollService "github.com/wagestack/payroll-backend-go/internal/service/payroll"
	reviewService "github.com/wagestack/payroll-backend-go/internal/service/review"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	typeRepo := postgresql.NewAdjustmentTypeRepository(db)
	assignmentRepo := postgresql.NewAdjustmentAssignmentRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	lineItemRepo := postgresql.NewPayrollLineItemRepository(db)
	reviewerRepo := postgresql.NewReviewerRepository(db)
	taskRepo := postgresql.NewReviewTaskRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authorizer, err := authz.NewAuthorizer(cfg.Authz.ModelPath, cfg.Authz.PolicyPath)
	if err != nil {
		log.Fatal("Failed to initialize authorizer:", err)
	}

	payrollSvc := payrollService.NewPayrollService(
		db, runRepo, lineItemRepo, employeeRepo, assignmentRepo,
		absenceRepo, loanRepo, reviewerRepo, taskRepo, authorizer,
	)
	reviewSvc := reviewService.NewReviewService(db, taskRepo, reviewerRepo, runRepo, authorizer)
	adjustmentSvc := adjustmentService.NewAdjustmentService(db, typeRepo, assignmentRepo, employeeRepo, authorizer)
	absenceSvc := absenceService.NewAbsenceService(db, absenceRepo, employeeRepo, authorizer)
	loanSvc := loanService.NewLoanService(db, loanRepo, employeeRepo, authorizer)

	handlers := appHTTP.Handlers{
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		Review:    appHTTP.NewReviewHandler(reviewSvc),
		Allowance: appHTTP.NewAdjustmentHandler(adjustmentSvc, adjustment.KindAllowance),
		Deduction: appHTTP.NewAdjustmentHandler(adjustmentSvc, adjustment.KindDeduction),
		Absence:   appHTTP.NewAbsenceHandler(absenceSvc),
		Loan:      appHTTP.NewLoanHandler(loanSvc),
	}

	router := appHTTP.NewRouter(JWTService, cfg.App.Env, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
