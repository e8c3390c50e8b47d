package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Token lifetime is fixed at 24 hours and is not configurable per call.
const tokenLifetime = 24 * time.Hour

const devSecret = "dev-secret-key"

var secret = []byte(devSecret)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// Claims is the bearer token payload: the user identity plus iat/exp.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// InitSecret loads the signing secret from AUTH_SECRET. Without it the
// development secret is used, which is unsafe anywhere but local development.
func InitSecret() {
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		secret = []byte(v)
		return
	}

	log.Warn().Msg("AUTH_SECRET is not set, falling back to the development secret; do not run this in production")
}

// GenerateToken issues an HS256-signed bearer token for the user.
func GenerateToken(userID uint, email, name, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// VerifyToken checks the token's structure, signature and expiry and returns
// the decoded claims. Failures are reported as ErrTokenMalformed,
// ErrTokenSignature or ErrTokenExpired; a token that fails any check is
// rejected as a whole.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return nil, ErrTokenSignature
	default:
		return nil, ErrTokenMalformed
	}
}
