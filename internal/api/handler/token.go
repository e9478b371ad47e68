package handler

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
)

// issueToken mints the HS256 session token for an authenticated account.
// Token issuance lives at the API edge; the account service itself knows
// nothing about sessions.
func issueToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"profile": user.AccessProfile,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
