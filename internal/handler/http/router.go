package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/handler/http/middleware"
	"github.com/wagestack/payroll-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Payroll   PayrollHandler
	Review    ReviewHandler
	Allowance AdjustmentHandler
	Deduction AdjustmentHandler
	Absence   AbsenceHandler
	Loan      LoanHandler
}

func NewRouter(JWTService jwt.Service, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wagestack-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/sync", h.Payroll.Sync)
				r.Get("/runs", h.Payroll.ListRuns)
				r.Get("/years", h.Payroll.ListYears)

				r.Route("/runs/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetRun)
					r.Get("/items", h.Payroll.ListRunItems)
					r.Delete("/", h.Payroll.DeleteRun)
					r.Post("/transition", h.Payroll.Transition)
					r.Post("/lock", h.Payroll.TransitionTo(payroll.StatusLocked))
					r.Post("/unlock", h.Payroll.TransitionTo(payroll.StatusUnlocked))
					r.Post("/pay", h.Payroll.TransitionTo(payroll.StatusPaid))
					r.Post("/complete", h.Payroll.TransitionTo(payroll.StatusCompleted))
					r.Post("/cancel", h.Payroll.TransitionTo(payroll.StatusCancelled))

					r.Get("/review", h.Review.GetRunReviewStatus)
					r.Get("/review/tasks", h.Review.ListRunTasks)
				})

				r.Route("/review/tasks", func(r chi.Router) {
					r.Patch("/{taskId}", h.Review.UpdateTask)
					r.Patch("/", h.Review.BulkUpdateTasks)
				})

				mountAdjustment := func(prefix string, ah AdjustmentHandler) {
					r.Route(prefix, func(r chi.Router) {
						r.Post("/types", ah.CreateType)
						r.Get("/types", ah.ListTypes)
						r.Delete("/types/{id}", ah.DeleteType)

						r.Post("/assignments", ah.Assign)
						r.Get("/assignments", ah.ListAssignments)
						r.Put("/assignments/{id}", ah.UpdateAssignment)
						r.Delete("/assignments/{id}", ah.DeleteAssignment)
						r.Post("/assignments/import", ah.ImportAssignments)
					})
				}
				mountAdjustment("/allowances", h.Allowance)
				mountAdjustment("/deductions", h.Deduction)

				r.Route("/absences", func(r chi.Router) {
					r.Post("/", h.Absence.Upsert)
					r.Get("/", h.Absence.ListByPeriod)
					r.Delete("/{id}", h.Absence.Delete)
				})

				r.Route("/loans", func(r chi.Router) {
					r.Post("/", h.Loan.Upsert)
					r.Get("/", h.Loan.List)
					r.Get("/employee/{employeeId}", h.Loan.GetByEmployee)
					r.Post("/{id}/deactivate", h.Loan.Deactivate)
				})
			})
		})
	})

	return r
}
