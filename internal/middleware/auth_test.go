package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()

	var body struct {
		Success bool           `json:"success"`
		Error   types.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success=false, body: %s", w.Body.String())
	}
	return body.Error
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newAuthTestRouter()

	w := doRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	apiErr := decodeError(t, w)
	if apiErr.Code != types.CodeAuth {
		t.Errorf("error code = %q, want %q", apiErr.Code, types.CodeAuth)
	}
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	r := newAuthTestRouter()

	w := doRequest(t, r, "Basic abc123")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	r := newAuthTestRouter()

	w := doRequest(t, r, "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	apiErr := decodeError(t, w)
	if apiErr.Message != "Token is malformed" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := newAuthTestRouter()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	})
	tok, err := expired.SignedString([]byte("dev-secret-key"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	w := doRequest(t, r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	apiErr := decodeError(t, w)
	if apiErr.Message != "Token has expired" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	r := newAuthTestRouter()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := forged.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	w := doRequest(t, r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	apiErr := decodeError(t, w)
	if apiErr.Message != "Token signature is invalid" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, AuthenticatedUser{ID: 1, Role: models.RoleMember})
	}, RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	apiErr := decodeError(t, w)
	if apiErr.Code != types.CodeForbidden {
		t.Errorf("error code = %q, want %q", apiErr.Code, types.CodeForbidden)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, AuthenticatedUser{ID: 1, Role: models.RoleAdmin})
	}, RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
