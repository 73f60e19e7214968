package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-wtwr-api/config"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// IssueToken signs a stateless, time-bounded credential for the given
// identity. Validity is fully determined by signature and expiry; nothing is
// stored server-side.
func IssueToken(cfg config.JWTConfig, userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
	if err != nil {
		return "", types.NewInternal("Failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken checks signature integrity and expiry and extracts the subject
// id. Malformed, expired and badly signed tokens all collapse into the same
// Unauthorized outcome; callers never learn which check failed.
func VerifyToken(cfg config.JWTConfig, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", types.NewUnauthorized(MsgAuthorizationRequired)
	}

	return claims.Subject, nil
}
