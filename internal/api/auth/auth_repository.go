package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ AuthRepo = (*AuthRepoFactory)(nil)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuthRepo interface {
	CreateUser(ctx context.Context, name, avatar, email, passwordHash string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type AuthRepoFactory struct {
	logger *slog.Logger
	pgpool DB
}

func NewAuthRepoFactory(pgpool DB, logger *slog.Logger) *AuthRepoFactory {
	return &AuthRepoFactory{
		logger: logger,
		pgpool: pgpool,
	}
}

const uniqueViolation = "23505"

// CreateUser inserts a new identity. The unique constraint on email is the
// single arbiter of duplicates, so concurrent registrations cannot race past
// an application-level existence check.
func (r *AuthRepoFactory) CreateUser(ctx context.Context, name, avatar, email, passwordHash string) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (name, avatar, email, password_hash)
         VALUES ($1, $2, $3, $4)
         RETURNING id, name, avatar, email, created_at, updated_at`,
		name, avatar, email, passwordHash).Scan(
		&user.ID, &user.Name, &user.Avatar, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, types.NewConflict("A user with this email already exists")
		}
		return nil, types.NewInternal("Failed to create user", err)
	}

	return &user, nil
}

// GetUserByEmail fetches an identity including its password hash for
// credential checks.
func (r *AuthRepoFactory) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, avatar, email, password_hash, created_at, updated_at
         FROM users WHERE email = $1`,
		email).Scan(
		&user.ID, &user.Name, &user.Avatar, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewNotFound("User not found")
		}
		return nil, types.NewInternal("Failed to fetch user", err)
	}

	return &user, nil
}
