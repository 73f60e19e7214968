package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for profile operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileParams) (*types.User, error)
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// GetUserProfile retrieves a user's profile by ID.
func (s *UserServiceImpl) GetUserProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	l := s.logger.With(slog.String("method", "GetUserProfile"), slog.String("userID", userID.String()))
	l.DebugContext(ctx, "Fetching user profile")

	profile, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		l.WarnContext(ctx, "Failed to fetch user profile", slog.Any("error", err))
		return nil, err
	}

	return profile, nil
}

// UpdateUserProfile updates name and avatar; email and password are
// immutable on this surface.
func (s *UserServiceImpl) UpdateUserProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileParams) (*types.User, error) {
	l := s.logger.With(slog.String("method", "UpdateUserProfile"), slog.String("userID", userID.String()))

	updated, err := s.repo.UpdateProfile(ctx, userID, params)
	if err != nil {
		l.WarnContext(ctx, "Failed to update user profile", slog.Any("error", err))
		return nil, err
	}

	l.InfoContext(ctx, "User profile updated")
	return updated, nil
}
