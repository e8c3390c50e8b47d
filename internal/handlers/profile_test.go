package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teamboard-dev/teamboard/internal/middleware"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
)

// newHandlerTestRouter wires a handler behind a stub that plants an
// authenticated member in the context, so validation paths can be exercised
// without a database.
func newHandlerTestRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
			ID:    5,
			Name:  "Tester",
			Email: "tester@example.com",
			Role:  models.RoleMember,
		})
	}, handler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateStrengths(t *testing.T) {
	t.Parallel()

	valid := []string{"Strategic", "Learner", "Achiever", "Focus", "Empathy"}

	if msg, ok := validateStrengths(valid); !ok {
		t.Fatalf("valid selection rejected: %s", msg)
	}

	if _, ok := validateStrengths(valid[:4]); ok {
		t.Errorf("four traits should be rejected")
	}

	six := append(append([]string{}, valid...), "Woo")
	if _, ok := validateStrengths(six); ok {
		t.Errorf("six traits should be rejected")
	}

	unknown := []string{"Strategic", "Learner", "Achiever", "Focus", "NotATrait"}
	if _, ok := validateStrengths(unknown); ok {
		t.Errorf("unknown trait code should be rejected")
	}

	dup := []string{"Strategic", "Strategic", "Achiever", "Focus", "Empathy"}
	if _, ok := validateStrengths(dup); ok {
		t.Errorf("duplicate trait codes should be rejected")
	}
}

func TestUpdateProfile_RejectsShortName(t *testing.T) {
	r := newHandlerTestRouter(http.MethodPut, "/profile", UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/profile", `{"name":"A"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_RejectsNegativeExperience(t *testing.T) {
	r := newHandlerTestRouter(http.MethodPut, "/profile", UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/profile", `{"name":"Tester","experience_years":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_RejectsBadStrengths(t *testing.T) {
	r := newHandlerTestRouter(http.MethodPut, "/profile", UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/profile",
		`{"name":"Tester","strengths_finder":["Strategic","Learner"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_RejectsUnknownPersonalityType(t *testing.T) {
	r := newHandlerTestRouter(http.MethodPut, "/profile", UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/profile",
		`{"name":"Tester","sixteen_types":{"type":"ABCD"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
