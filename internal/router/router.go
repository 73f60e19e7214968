package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-wtwr-api/internal/api"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/auth"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/item"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/user"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandler
	UserHandler            *user.HandlerImpl
	ItemHandler            *item.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go.
//
// Per-route chains keep validation strictly ahead of authentication, so a
// malformed body or id parameter is rejected before identity resolution
// ever runs.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// Unmatched routes share the standard error shape.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, r, types.NewNotFound("Requested resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, r, types.NewNotFound("Requested resource not found"))
	})

	// Public routes establishing identity
	r.With(api.ValidateBody[auth.RegisterRequest]()).Post("/signup", cfg.AuthHandler.Signup)
	r.With(api.ValidateBody[auth.LoginRequest]()).Post("/signin", cfg.AuthHandler.Signin)

	r.Route("/users", func(r chi.Router) {
		r.With(cfg.AuthenticateMiddleware).Get("/me", cfg.UserHandler.GetMe)
		r.With(api.ValidateBody[user.UpdateProfileRequest](), cfg.AuthenticateMiddleware).
			Patch("/me", cfg.UserHandler.UpdateMe)
	})

	r.Route("/items", func(r chi.Router) {
		r.Get("/", cfg.ItemHandler.ListItems)
		r.With(api.ValidateBody[item.CreateItemRequest](), cfg.AuthenticateMiddleware).
			Post("/", cfg.ItemHandler.CreateItem)

		r.Route("/{itemID}", func(r chi.Router) {
			r.Use(api.ValidateUUIDParam("itemID"))
			r.Use(cfg.AuthenticateMiddleware)
			r.Delete("/", cfg.ItemHandler.DeleteItem)
			r.Put("/likes", cfg.ItemHandler.LikeItem)
			r.Delete("/likes", cfg.ItemHandler.UnlikeItem)
		})
	})

	return r
}
