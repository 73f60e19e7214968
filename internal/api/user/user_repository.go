package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ UserRepo = (*UserRepoFactory)(nil)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepo interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileParams) (*types.User, error)
}

type UserRepoFactory struct {
	logger *slog.Logger
	pgpool DB
}

func NewUserRepoFactory(pgpool DB, logger *slog.Logger) *UserRepoFactory {
	return &UserRepoFactory{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *UserRepoFactory) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, avatar, email, created_at, updated_at
         FROM users WHERE id = $1`,
		userID).Scan(
		&user.ID, &user.Name, &user.Avatar, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewNotFound("User not found")
		}
		return nil, types.NewInternal("Failed to fetch user", err)
	}

	return &user, nil
}

// UpdateProfile applies partial updates; nil fields keep their stored value.
func (r *UserRepoFactory) UpdateProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileParams) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`UPDATE users
         SET name = COALESCE($2, name),
             avatar = COALESCE($3, avatar),
             updated_at = now()
         WHERE id = $1
         RETURNING id, name, avatar, email, created_at, updated_at`,
		userID, params.Name, params.Avatar).Scan(
		&user.ID, &user.Name, &user.Avatar, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewNotFound("User not found")
		}
		return nil, types.NewInternal("Failed to update user", err)
	}

	return &user, nil
}
