package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	JWTService          jwt.Service
	AuthHandler         AuthHandler
	LeaveHandler        LeaveHandler
	AttendanceHandler   AttendanceHandler
	PayrollHandler      PayrollHandler
	DocumentHandler     DocumentHandler
	NotificationHandler NotificationHandler
	ActivityHandler     ActivityHandler
	AllowedOrigins      []string
	Environment         string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	loginLimiter := middleware.NewRateLimiter(5, 10)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.Authenticator(cfg.JWTService))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", cfg.AuthHandler.Me)
				r.Put("/me", cfg.AuthHandler.UpdateProfile)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", cfg.AuthHandler.ListEmployees)
					r.Post("/", cfg.AuthHandler.Register)
					r.Put("/{id}", cfg.AuthHandler.UpdateProfile)
				})

				// Admin only
				r.With(middleware.RequireAdmin).Delete("/{id}", cfg.AuthHandler.Deactivate)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", cfg.LeaveHandler.Submit)
					r.Get("/", cfg.LeaveHandler.List)
					r.Get("/history", cfg.LeaveHandler.MyHistory)
					r.Get("/stats", cfg.LeaveHandler.MyStats)
					r.Get("/{id}", cfg.LeaveHandler.Get)
					r.Put("/{id}", cfg.LeaveHandler.Edit)
					r.Post("/{id}/cancel", cfg.LeaveHandler.Cancel)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/{id}/approve", cfg.LeaveHandler.Approve)
						r.Post("/{id}/reject", cfg.LeaveHandler.Reject)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/me", cfg.LeaveHandler.MyBalance)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/", cfg.LeaveHandler.AllBalances)
						r.Get("/{employeeID}", cfg.LeaveHandler.EmployeeBalance)
						r.Put("/adjust", cfg.LeaveHandler.AdjustBalance)
						r.Post("/rollover", cfg.LeaveHandler.Rollover)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", cfg.AttendanceHandler.CheckIn)
				r.Post("/check-out", cfg.AttendanceHandler.CheckOut)
				r.Get("/", cfg.AttendanceHandler.List)
				r.Get("/summary", cfg.AttendanceHandler.MySummary)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/summary/{employeeID}", cfg.AttendanceHandler.EmployeeSummary)
					r.Put("/", cfg.AttendanceHandler.Upsert)
					r.Delete("/{id}", cfg.AttendanceHandler.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", cfg.PayrollHandler.List)
				r.Get("/summary", cfg.PayrollHandler.MySummary)
				r.Get("/{id}", cfg.PayrollHandler.Get)
				r.Get("/{id}/payslip", cfg.PayrollHandler.Payslip)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", cfg.PayrollHandler.Generate)
					r.Put("/{id}", cfg.PayrollHandler.Update)
					r.Post("/{id}/pay", cfg.PayrollHandler.MarkPaid)
					r.Delete("/{id}", cfg.PayrollHandler.Delete)
					r.Get("/summary/{employeeID}", cfg.PayrollHandler.EmployeeSummary)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", cfg.DocumentHandler.Upload)
				r.Get("/", cfg.DocumentHandler.List)
				r.Get("/{id}/download", cfg.DocumentHandler.Download)
				r.Get("/{id}/link", cfg.DocumentHandler.Link)
				r.Delete("/{id}", cfg.DocumentHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", cfg.NotificationHandler.List)
				r.Get("/unread-count", cfg.NotificationHandler.UnreadCount)
				r.Post("/{id}/read", cfg.NotificationHandler.MarkRead)
				r.Post("/read-all", cfg.NotificationHandler.MarkAllRead)
				r.Delete("/{id}", cfg.NotificationHandler.Delete)
			})

			// Admin only
			r.With(middleware.RequireAdmin).Get("/activity", cfg.ActivityHandler.List)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}
