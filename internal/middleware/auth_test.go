package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jg4611/mad2-by-amit/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newProtectedRouter(t *testing.T, blacklist BlacklistChecker, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRoles(testSecret, blacklist, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	userToken, err := jwt.GenerateAccessToken("u1", "user@example.com", "user", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	adminToken, err := jwt.GenerateAccessToken("a1", "admin@example.com", "admin", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	wrongKeyToken, err := jwt.GenerateAccessToken("u1", "user@example.com", "user", "other-secret")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name   string
		roles  []string
		header string
		want   int
	}{
		{"no header", []string{"admin"}, "", http.StatusUnauthorized},
		{"malformed header", []string{"admin"}, "Token abc", http.StatusUnauthorized},
		{"bad signature", []string{"admin"}, "Bearer " + wrongKeyToken, http.StatusUnauthorized},
		{"wrong role", []string{"admin"}, "Bearer " + userToken, http.StatusForbidden},
		{"allowed role", []string{"admin"}, "Bearer " + adminToken, http.StatusOK},
		{"any role when unrestricted", nil, "Bearer " + userToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(t, nil, tt.roles...)
			rec := request(router, tt.header)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRolesRejectsBlacklistedToken(t *testing.T) {
	token, err := jwt.GenerateAccessToken("u1", "user@example.com", "user", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	revoked := BlacklistFunc(func(c *gin.Context, jti string) bool { return true })
	router := newProtectedRouter(t, revoked)

	rec := request(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d for revoked token", rec.Code, http.StatusUnauthorized)
	}
}
