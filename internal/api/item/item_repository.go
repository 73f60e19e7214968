package item

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ ItemRepo = (*ItemRepoFactory)(nil)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ItemRepo interface {
	ListItems(ctx context.Context) ([]types.ClothingItem, error)
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*types.ClothingItem, error)
	CreateItem(ctx context.Context, ownerID uuid.UUID, name, weather, imageURL string) (*types.ClothingItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	AddLike(ctx context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error)
	RemoveLike(ctx context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error)
}

type ItemRepoFactory struct {
	logger *slog.Logger
	pgpool DB
}

func NewItemRepoFactory(pgpool DB, logger *slog.Logger) *ItemRepoFactory {
	return &ItemRepoFactory{
		logger: logger,
		pgpool: pgpool,
	}
}

const foreignKeyViolation = "23503"

const itemColumns = `i.id, i.owner_id, i.name, i.weather, i.image_url, i.created_at,
       array_remove(array_agg(l.user_id), NULL) AS likes`

const itemFromClause = `FROM clothing_items i
       LEFT JOIN item_likes l ON l.item_id = i.id`

func (r *ItemRepoFactory) ListItems(ctx context.Context) ([]types.ClothingItem, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+itemColumns+`
         `+itemFromClause+`
         GROUP BY i.id
         ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, types.NewInternal("Failed to list items", err)
	}
	defer rows.Close()

	items := []types.ClothingItem{}
	for rows.Next() {
		var item types.ClothingItem
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Weather,
			&item.ImageURL, &item.CreatedAt, &item.Likes); err != nil {
			return nil, types.NewInternal("Failed to scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewInternal("Failed to list items", err)
	}

	return items, nil
}

func (r *ItemRepoFactory) GetItemByID(ctx context.Context, itemID uuid.UUID) (*types.ClothingItem, error) {
	var item types.ClothingItem
	err := r.pgpool.QueryRow(ctx,
		`SELECT `+itemColumns+`
         `+itemFromClause+`
         WHERE i.id = $1
         GROUP BY i.id`,
		itemID).Scan(&item.ID, &item.OwnerID, &item.Name, &item.Weather,
		&item.ImageURL, &item.CreatedAt, &item.Likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewNotFound("Item not found")
		}
		return nil, types.NewInternal("Failed to fetch item", err)
	}

	return &item, nil
}

func (r *ItemRepoFactory) CreateItem(ctx context.Context, ownerID uuid.UUID, name, weather, imageURL string) (*types.ClothingItem, error) {
	var item types.ClothingItem
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO clothing_items (owner_id, name, weather, image_url)
         VALUES ($1, $2, $3, $4)
         RETURNING id, owner_id, name, weather, image_url, created_at`,
		ownerID, name, weather, imageURL).Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Weather, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		return nil, types.NewInternal("Failed to create item", err)
	}

	item.Likes = []uuid.UUID{}
	return &item, nil
}

func (r *ItemRepoFactory) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM clothing_items WHERE id = $1`, itemID)
	if err != nil {
		return types.NewInternal("Failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewNotFound("Item not found")
	}
	return nil
}

// AddLike records the caller in the item's like set. The primary key on
// (item_id, user_id) plus ON CONFLICT DO NOTHING makes repeated likes a
// no-op rather than duplicate entries, and two concurrent likes by different
// users are both kept.
func (r *ItemRepoFactory) AddLike(ctx context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error) {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO item_likes (item_id, user_id)
         VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		itemID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, types.NewNotFound("Item not found")
		}
		return nil, types.NewInternal("Failed to like item", err)
	}

	return r.GetItemByID(ctx, itemID)
}

// RemoveLike removes the caller from the like set. Unliking an item the
// caller never liked succeeds as a no-op.
func (r *ItemRepoFactory) RemoveLike(ctx context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error) {
	_, err := r.pgpool.Exec(ctx,
		`DELETE FROM item_likes WHERE item_id = $1 AND user_id = $2`,
		itemID, userID)
	if err != nil {
		return nil, types.NewInternal("Failed to unlike item", err)
	}

	return r.GetItemByID(ctx, itemID)
}
