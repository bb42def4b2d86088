package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/punchdesk/attendance-backend-go/internal/config"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
	locationHandler LocationHandler,
	taskHandler TaskHandler,
	userHandler UserHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "punchdesk"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
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
			r.Post("/signup", authHandler.Signup)
		})

		// SSE stream authenticates with its own short-lived query token
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", attendanceHandler.Punch)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/sheet", attendanceHandler.Sheet)
				r.Get("/export", attendanceHandler.Export)

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", requestHandler.List)
					r.Post("/", requestHandler.Create)

					// Reviewer only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireReviewer)
						r.Patch("/{id}", requestHandler.Review)
					})
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", locationHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", locationHandler.Create)
					r.Put("/{id}", locationHandler.Update)
					r.Delete("/{id}", locationHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListMine)
				r.Post("/", taskHandler.Create)
				r.Patch("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
				r.Get("/user/{userID}", taskHandler.ListForUser)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/assign", taskHandler.Assign)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Get("/", userHandler.List)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", userHandler.Create)
					r.Patch("/{id}", userHandler.Update)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
				r.Patch("/{id}/read", notificationHandler.MarkRead)
				r.Delete("/{id}", notificationHandler.Delete)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/announce", notificationHandler.Announce)
				})
			})
		})
	})

	return r
}
