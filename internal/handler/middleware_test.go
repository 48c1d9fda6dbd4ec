package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rahnacm97/Talentra/internal/config"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

func newTestTokens(t *testing.T) *service.TokenService {
	t.Helper()
	// Only the stateless access-token path is exercised here; no store needed.
	tokens, err := service.NewTokenService(nil, config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     "15m",
		RefreshTTL:    "168h",
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return tokens
}

func newProtectedRouter(t *testing.T, role model.Role) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := newTestTokens(t)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens), RequireRole(role), func(c *gin.Context) {
		user := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"userId": user.UserID})
	})
	return r, tokens
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r, _ := newProtectedRouter(t, model.RoleAdmin)

	for _, header := range []string{"", "Bearer ", "Bearer garbage", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r, tokens := newProtectedRouter(t, model.RoleAdmin)

	token, err := tokens.GenerateAccessToken("admin-1", model.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "admin-1")
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	r, tokens := newProtectedRouter(t, model.RoleAdmin)

	token, err := tokens.GenerateAccessToken("cand-1", model.RoleCandidate)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/health", Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	// Unlisted origins get no CORS headers.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	// Preflight short-circuits.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}
