package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(42, "alice@example.com", "Alice", "member")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email mismatch: got %q", claims.Email)
	}
	if claims.Name != "Alice" {
		t.Errorf("Name mismatch: got %q", claims.Name)
	}
	if claims.Role != "member" {
		t.Errorf("Role mismatch: got %q", claims.Role)
	}
}

func TestGenerateToken_LifetimeIs24Hours(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(1, "a@example.com", "A", "member")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 24*time.Hour {
		t.Fatalf("lifetime mismatch: got %v want 24h", lifetime)
	}
}

func TestGenerateToken_HS256Header(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(1, "a@example.com", "A", "member")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}

	if !strings.Contains(string(header), `"alg":"HS256"`) {
		t.Errorf("expected HS256 alg in header, got %s", header)
	}
	if !strings.Contains(string(header), `"typ":"JWT"`) {
		t.Errorf("expected JWT typ in header, got %s", header)
	}
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		Email:  "mallory@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	tok, err := forged.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = VerifyToken(tok)
	if !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 9,
		Email:  "old@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})

	tok, err := expired.SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = VerifyToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := VerifyToken(tok)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("VerifyToken(%q): expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}
