package user

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-wtwr-api/internal/api"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/auth"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetMe handles GET /users/me, returning the authenticated identity.
func (h *HandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetMe"))

	userID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	profile, err := h.userService.GetUserProfile(ctx, userID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}

// UpdateMe handles PATCH /users/me.
func (h *HandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateMe"))

	userID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	body, ok := api.BodyFromContext[UpdateProfileRequest](ctx)
	if !ok {
		l.ErrorContext(ctx, "Validated body missing from context")
		api.Error(w, r, types.NewInternal("Request body not validated", nil))
		return
	}

	updated, err := h.userService.UpdateUserProfile(ctx, userID, body.Params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ProfileResponse{Data: updated})
}
