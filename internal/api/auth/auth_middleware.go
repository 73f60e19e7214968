package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-wtwr-api/config"
	"github.com/FACorreiaa/go-wtwr-api/internal/api"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Typed context key so the resolved identity cannot collide with other
// context values.
type contextKey string

const UserIDKey contextKey = "userID"

// Authenticate is middleware to validate bearer credential tokens. A request
// either passes with the verified subject id attached to its context, or is
// rejected with a single Unauthorized outcome; the chain never proceeds with
// a partial identity.
func Authenticate(logger *slog.Logger, jwtCfg config.JWTConfig) func(next http.Handler) http.Handler {
	if jwtCfg.SecretKey == "" {
		logger.Error("FATAL: JWT Secret Key is not configured!")
		panic("JWT Secret Key cannot be empty")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.Error(w, r, types.NewUnauthorized(MsgAuthorizationRequired))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.Error(w, r, types.NewUnauthorized(MsgAuthorizationRequired))
				return
			}

			subject, err := VerifyToken(jwtCfg, headerParts[1])
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				api.Error(w, r, err)
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, subject)
			l.DebugContext(ctx, "Authentication successful", slog.String("userID", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the raw subject id attached by Authenticate.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// CallerID returns the authenticated identity as a UUID. Handlers behind
// Authenticate use this; absence means the middleware never ran.
func CallerID(ctx context.Context) (uuid.UUID, error) {
	userIDStr, ok := GetUserIDFromContext(ctx)
	if !ok || userIDStr == "" {
		return uuid.Nil, types.NewUnauthorized(MsgAuthorizationRequired)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, types.NewUnauthorized(MsgAuthorizationRequired)
	}
	return userID, nil
}
