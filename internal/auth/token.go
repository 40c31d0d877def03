package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/octavertex/workhub/internal/models"
)

// Claims is the stateless API token payload. The session cookie and the
// bearer token carry the same identity fields; renewal always means
// re-authenticating, never extending a live token.
type Claims struct {
	UserID         uint64      `json:"user_id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	Role           models.Role `json:"role"`
	OrganizationID *uint64     `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// NewToken signs a token for the user, valid for ttl from now.
func NewToken(secret, issuer string, ttl time.Duration, user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.FullName(),
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
