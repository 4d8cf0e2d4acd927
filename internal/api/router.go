package api

import (
	"net/http"
	"time"

	"contacts_api/internal/api/handler"
	"contacts_api/internal/api/middleware"
	"contacts_api/internal/app/service"
	"contacts_api/internal/common"
	"contacts_api/internal/common/security"
	"contacts_api/internal/platform/config"
	"contacts_api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	tokens *security.TokenService,
	authService *service.AuthService,
	contactService *service.ContactService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(logger.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses the "Authorization: Bearer T" header on every request and puts
	// the verification result in context. Rejection happens per-route in the
	// Authenticator gate, so public routes stay public.
	r.Use(jwtauth.Verifier(tokens.Auth()))

	responder := common.NewResponder(cfg.IsProduction())
	authenticate := middleware.Authenticator(responder)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	userHandler := handler.NewUserHandler(authService, responder)
	r.Route("/user", func(u chi.Router) {
		userHandler.RegisterRoutes(u, authenticate)
	})

	contactHandler := handler.NewContactHandler(contactService, responder)
	r.Route("/contact", func(c chi.Router) {
		contactHandler.RegisterRoutes(c, authenticate)
	})

	return r
}
