package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gardops/gardops-backend-go/internal/handler/http/middleware"
	"github.com/gardops/gardops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	cpqHandler CpqHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gardops-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/parameters", payrollHandler.GetParameters)
				r.Post("/simulator/compute", payrollHandler.Simulate)
				r.Route("/simulations", func(r chi.Router) {
					r.Get("/", payrollHandler.ListSimulations)
					r.Get("/{id}", payrollHandler.GetSimulation)
				})

				// Parameter import flow, admin role only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Route("/parameters/versions", func(r chi.Router) {
						r.Get("/", payrollHandler.ListParameterVersions)
						r.Post("/", payrollHandler.PublishParameterVersion)
					})
					r.Put("/references/uf", payrollHandler.UpsertUFRate)
					r.Put("/references/utm", payrollHandler.UpsertUTMRate)
				})
			})

			r.Route("/cpq", func(r chi.Router) {
				r.Route("/quotes", func(r chi.Router) {
					r.Get("/", cpqHandler.ListQuotes)
					r.Post("/", cpqHandler.CreateQuote)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", cpqHandler.GetQuote)
						r.Get("/breakdown", cpqHandler.GetBreakdown)
						r.Post("/positions", cpqHandler.AddPosition)
						r.Route("/positions/{positionId}", func(r chi.Router) {
							r.Delete("/", cpqHandler.DeletePosition)
							r.Post("/clone", cpqHandler.ClonePosition)
						})
					})
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
