package item

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ ItemService = (*ItemServiceImpl)(nil)

// ItemService defines the business logic contract for clothing items.
type ItemService interface {
	ListItems(ctx context.Context) ([]types.ClothingItem, error)
	CreateItem(ctx context.Context, ownerID uuid.UUID, name, weather, imageURL string) (*types.ClothingItem, error)
	DeleteItem(ctx context.Context, itemID, callerID uuid.UUID) error
	LikeItem(ctx context.Context, itemID, callerID uuid.UUID) (*types.ClothingItem, error)
	UnlikeItem(ctx context.Context, itemID, callerID uuid.UUID) (*types.ClothingItem, error)
}

const listCacheKey = "items:all"

// ItemServiceImpl provides the implementation for ItemService. The public
// item list is cached briefly and dropped on every mutation.
type ItemServiceImpl struct {
	logger *slog.Logger
	repo   ItemRepo
	cache  *cache.Cache
}

// NewItemService creates a new item service instance.
func NewItemService(repo ItemRepo, logger *slog.Logger) *ItemServiceImpl {
	return &ItemServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(30*time.Second, time.Minute),
	}
}

// ListItems returns every item with its like set. Reads require no
// authentication.
func (s *ItemServiceImpl) ListItems(ctx context.Context) ([]types.ClothingItem, error) {
	ctx, span := otel.Tracer("ItemService").Start(ctx, "ListItems")
	defer span.End()

	l := s.logger.With(slog.String("method", "ListItems"))

	if cached, found := s.cache.Get(listCacheKey); found {
		if items, ok := cached.([]types.ClothingItem); ok {
			l.DebugContext(ctx, "Item list served from cache", slog.Int("count", len(items)))
			return items, nil
		}
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list items", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list items")
		return nil, err
	}

	s.cache.SetDefault(listCacheKey, items)
	return items, nil
}

// CreateItem persists a new item owned by the caller.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, ownerID uuid.UUID, name, weather, imageURL string) (*types.ClothingItem, error) {
	ctx, span := otel.Tracer("ItemService").Start(ctx, "CreateItem", trace.WithAttributes(
		attribute.String("user.id", ownerID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateItem"), slog.String("ownerID", ownerID.String()))

	item, err := s.repo.CreateItem(ctx, ownerID, name, weather, imageURL)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create item", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create item")
		return nil, err
	}

	s.cache.Delete(listCacheKey)
	l.InfoContext(ctx, "Item created", slog.String("itemID", item.ID.String()))
	return item, nil
}

// DeleteItem removes an item. Existence is confirmed strictly before
// ownership is evaluated, so probing a missing item and probing someone
// else's item are indistinguishable from normal not-found handling.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, itemID, callerID uuid.UUID) error {
	l := s.logger.With(slog.String("method", "DeleteItem"),
		slog.String("itemID", itemID.String()), slog.String("callerID", callerID.String()))

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		l.WarnContext(ctx, "Failed to fetch item for deletion", slog.Any("error", err))
		return err
	}

	if item.OwnerID != callerID {
		l.WarnContext(ctx, "Delete attempt by non-owner", slog.String("ownerID", item.OwnerID.String()))
		return types.NewForbidden("You are not allowed to delete this item")
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		l.ErrorContext(ctx, "Failed to delete item", slog.Any("error", err))
		return err
	}

	s.cache.Delete(listCacheKey)
	l.InfoContext(ctx, "Item deleted")
	return nil
}

// LikeItem adds the caller to the item's like set. Any authenticated
// identity may like any item; this operation is intentionally not
// owner-gated.
func (s *ItemServiceImpl) LikeItem(ctx context.Context, itemID, callerID uuid.UUID) (*types.ClothingItem, error) {
	l := s.logger.With(slog.String("method", "LikeItem"), slog.String("itemID", itemID.String()))

	item, err := s.repo.AddLike(ctx, itemID, callerID)
	if err != nil {
		l.WarnContext(ctx, "Failed to like item", slog.Any("error", err))
		return nil, err
	}

	s.cache.Delete(listCacheKey)
	return item, nil
}

// UnlikeItem removes the caller from the item's like set.
func (s *ItemServiceImpl) UnlikeItem(ctx context.Context, itemID, callerID uuid.UUID) (*types.ClothingItem, error) {
	l := s.logger.With(slog.String("method", "UnlikeItem"), slog.String("itemID", itemID.String()))

	item, err := s.repo.RemoveLike(ctx, itemID, callerID)
	if err != nil {
		l.WarnContext(ctx, "Failed to unlike item", slog.Any("error", err))
		return nil, err
	}

	s.cache.Delete(listCacheKey)
	return item, nil
}
