package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/pkg/auth"
)

func setupRouter(t *testing.T) (*gin.Engine, auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:      "test-secret-test-secret-test-secret",
		Issuer:      "cuidarpet-api",
		Audience:    "cuidarpet-clients",
		ExpiryHours: 1,
	})
	m := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	protected := r.Group("/", m.Authenticate())
	protected.GET("/whoami", func(c *gin.Context) {
		claims, err := authz.CurrentUser(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role.String()})
	})
	protected.GET("/admin-only", m.RequireRoles(authz.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, jwtSvc
}

func tokenFor(t *testing.T, jwtSvc auth.JWTService, role authz.Role) string {
	t.Helper()
	token, err := jwtSvc.GenerateToken(&model.User{
		Base:  model.Base{ID: uuid.New()},
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r, jwtSvc := setupRouter(t)
	token := tokenFor(t, jwtSvc, authz.RoleTutor)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	r, jwtSvc := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtSvc, authz.RoleVeterinarian))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@example.com")
	assert.Contains(t, w.Body.String(), "Veterinarian")
}

func TestRequireRoles(t *testing.T) {
	r, jwtSvc := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtSvc, authz.RoleTutor))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtSvc, authz.RoleAdmin))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
