package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hiregate/internal/auth"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/resume", nil)
	return c, w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	c, w := testContext(t)

	AuthMiddleware(nil)(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !c.IsAborted() {
		t.Fatal("request should be aborted")
	}
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	c, w := testContext(t)
	c.Request.Header.Set("Authorization", "Token abc")

	AuthMiddleware(nil)(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	c, _ := testContext(t)
	c.Set("identity", auth.Identity{Email: "hr@corp.com", Role: "pm"})

	RequireRole("pm", "admin")(c)

	if c.IsAborted() {
		t.Fatal("pm should pass a pm/admin guard")
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	c, w := testContext(t)
	c.Set("identity", auth.Identity{Email: "ann@example.com", Role: "candidate"})

	RequireRole("pm", "admin")(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRoleRejectsMissingIdentity(t *testing.T) {
	c, w := testContext(t)

	RequireRole("admin")(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestIdentityFromContext(t *testing.T) {
	c, _ := testContext(t)
	want := auth.Identity{Email: "ann@example.com", Role: "candidate"}
	c.Set("identity", want)

	got, ok := IdentityFromContext(c)
	if !ok || got != want {
		t.Fatalf("identity = (%+v, %v), want (%+v, true)", got, ok, want)
	}
}
