package auth

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-wtwr-api/internal/api"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

// Signup handles POST /signup. The body has already been schema-checked by
// the validation middleware.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signup"))

	body, ok := api.BodyFromContext[RegisterRequest](ctx)
	if !ok {
		l.ErrorContext(ctx, "Validated body missing from context")
		api.Error(w, r, types.NewInternal("Request body not validated", nil))
		return
	}

	user, err := h.authService.Register(ctx, body.Name, body.Avatar, body.Email, body.Password)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, RegisterResponse{Data: user})
}

// Signin handles POST /signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signin"))

	body, ok := api.BodyFromContext[LoginRequest](ctx)
	if !ok {
		l.ErrorContext(ctx, "Validated body missing from context")
		api.Error(w, r, types.NewInternal("Request body not validated", nil))
		return
	}

	token, err := h.authService.Login(ctx, body.Email, body.Password)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, LoginResponse{Token: token})
}
