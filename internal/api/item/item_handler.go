package item

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-wtwr-api/internal/api"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/auth"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListItems(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
	LikeItem(w http.ResponseWriter, r *http.Request)
	UnlikeItem(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	itemService ItemService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new item HandlerImpl instance.
func NewHandlerImpl(itemService ItemService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		itemService: itemService,
		logger:      logger,
	}
}

// ListItems handles GET /items. No authentication required for reads.
func (h *HandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ItemListResponse{Data: items})
}

// CreateItem handles POST /items. The caller becomes the owner.
func (h *HandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateItem"))

	callerID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	body, ok := api.BodyFromContext[CreateItemRequest](ctx)
	if !ok {
		l.ErrorContext(ctx, "Validated body missing from context")
		api.Error(w, r, types.NewInternal("Request body not validated", nil))
		return
	}

	item, err := h.itemService.CreateItem(ctx, callerID, body.Name, body.Weather, body.ImageURL)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, ItemResponse{Data: item})
}

// DeleteItem handles DELETE /items/{itemID}. Owner only.
func (h *HandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteItem"))

	callerID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	itemID, err := api.URLParamUUID(r, "itemID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	if err := h.itemService.DeleteItem(ctx, itemID, callerID); err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, DeleteResponse{Message: "Item successfully deleted"})
}

// LikeItem handles PUT /items/{itemID}/likes.
func (h *HandlerImpl) LikeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "LikeItem"))

	callerID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	itemID, err := api.URLParamUUID(r, "itemID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	item, err := h.itemService.LikeItem(ctx, itemID, callerID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ItemResponse{Data: item})
}

// UnlikeItem handles DELETE /items/{itemID}/likes.
func (h *HandlerImpl) UnlikeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UnlikeItem"))

	callerID, err := auth.CallerID(ctx)
	if err != nil {
		l.ErrorContext(ctx, "User ID not found in context")
		api.Error(w, r, err)
		return
	}

	itemID, err := api.URLParamUUID(r, "itemID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	item, err := h.itemService.UnlikeItem(ctx, itemID, callerID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ItemResponse{Data: item})
}
