package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-wtwr-api/config"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract for credential operations.
type AuthService interface {
	// Register creates a new identity with a hashed password and returns it.
	Register(ctx context.Context, name, avatar, email, password string) (*types.User, error)

	// Login authenticates email/password and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	logger *slog.Logger
	jwtCfg config.JWTConfig
	repo   AuthRepo
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo AuthRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		jwtCfg: jwtCfg,
		repo:   repo,
	}
}

// Register hashes the password with bcrypt (deliberately slow, salted) and
// persists the identity. The plaintext password never leaves this method.
func (s *AuthServiceImpl) Register(ctx context.Context, name, avatar, email, password string) (*types.User, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, types.NewInternal("Failed to hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, name, avatar, email, string(hashed))
	if err != nil {
		l.WarnContext(ctx, "Failed to create user", slog.Any("error", err))
		return nil, err
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", user.ID.String()))
	return user, nil
}

// Login looks the identity up by email and compares the password against the
// stored hash. An unknown email and a wrong password produce the exact same
// Unauthorized outcome so account existence cannot be probed.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Login"))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if types.IsKind(err, types.KindNotFound) {
			l.WarnContext(ctx, "Login attempt for unknown email")
			return "", types.NewUnauthorized(MsgIncorrectCredentials)
		}
		l.ErrorContext(ctx, "Failed to look up user", slog.Any("error", err))
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		l.WarnContext(ctx, "Login attempt with wrong password", slog.String("userID", user.ID.String()))
		return "", types.NewUnauthorized(MsgIncorrectCredentials)
	}

	token, err := IssueToken(s.jwtCfg, user.ID.String())
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return "", err
	}

	l.InfoContext(ctx, "User logged in", slog.String("userID", user.ID.String()))
	return token, nil
}
