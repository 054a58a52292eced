package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/pontoeletronico/ponto-reports/internal/handler/http/middleware"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/jwt"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

type Handlers struct {
	Auth      AuthHandler
	Summary   SummaryHandler
	Payment   PaymentHandler
	DateRange DateRangeHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, sessions *session.Manager, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-reports"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Company and employee tokens
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerVerifier(JWTService.JWTAuth()))
			r.Use(middleware.SessionRequired(sessions))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/session", h.Auth.Session)
				r.Post("/logout", h.Auth.Logout)
			})

			r.Get("/summaries/company", h.Summary.GetCompanySummary)
			r.Get("/monthly-summaries", h.Summary.GetMonthlySummaries)

			r.Route("/daily-summaries", func(r chi.Router) {
				r.Get("/", h.Summary.ListDailySummaries)
				r.Get("/{employeeID}/{date}", h.Summary.GetDailySummary)

				// Company only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCompany)
					r.Post("/recalc", h.Summary.RecalculateDaily)
					r.Post("/rebuild", h.Summary.RebuildDaily)
				})
			})

			r.Route("/date-ranges/{name}", func(r chi.Router) {
				r.Get("/", h.DateRange.Get)
				r.Delete("/", h.DateRange.Clear)
				r.Post("/select", h.DateRange.Select)
				r.Put("/bounds", h.DateRange.SetBounds)
			})

			r.With(middleware.RequireCompany).Get("/companies/my/payments/window", h.Payment.GetMyWindow)
		})

		// Super admin tokens, signed with their own key
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BearerVerifier(JWTService.AdminJWTAuth()))
			r.Use(middleware.AdminSessionRequired(sessions))
			r.Use(middleware.AdminOnly)

			r.Get("/session", h.Auth.Session)
			r.Route("/companies/{companyID}/payments", func(r chi.Router) {
				r.Get("/", h.Payment.ListPayments)
				r.Put("/", h.Payment.SetPaymentStatus)
				r.Get("/window", h.Payment.GetWindow)
			})
		})
	})
	return r
}
