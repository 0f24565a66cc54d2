package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/questify-api/internal/application/auth"
	"github.com/questify-api/internal/application/session"
	"github.com/questify-api/internal/application/todo"
	"github.com/questify-api/internal/application/user"
	"github.com/questify-api/internal/config"
	"github.com/questify-api/internal/transport/http/handler"
	appmiddleware "github.com/questify-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Accounts AccountRepository
	Todos    TodoRepository
	Notifier Notifier
	Hasher   PasswordHasher
	Tokens   TokenProvider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	userSvc := user.NewService(user.ServiceDeps{
		Accounts:       deps.Accounts,
		Hasher:         deps.Hasher,
		Notifier:       deps.Notifier,
		VerifyBaseURL:  cfg.PublicBaseURL,
		FailurePolicy:  cfg.NotifyFailurePolicy,
		NotifyAttempts: cfg.NotifyAttempts,
	})
	authSvc := auth.NewService(deps.Accounts)
	sessionSvc := session.NewService(deps.Accounts, deps.Hasher, deps.Tokens)
	todoSvc := todo.NewService(deps.Accounts, deps.Todos)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	emailH := handler.NewEmailConfirmHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	todoH := handler.NewTodoHandler(todoSvc)

	r.NotFound(healthH.NotFound)
	r.MethodNotAllowed(healthH.MethodNotAllowed)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health", healthH.Health)
	r.Post("/users/register", userH.Register)
	r.Get("/users/verify/{token}", emailH.Verify)
	r.Put("/users/login", sessionH.Login)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Auth(sessionSvc))

		r.Put("/users/logout", sessionH.Logout)
		r.Post("/todos", todoH.Create)
		r.Get("/todos", todoH.List)
	})

	return r
}
