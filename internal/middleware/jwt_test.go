package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavosampaioo/statusrotas/internal/models"
)

func newAdminGatedRouter(handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func serveWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminBlocksNonAdminBeforeHandler(t *testing.T) {
	var handlerRan bool
	r := newAdminGatedRouter(&handlerRan)

	token, err := GenerateToken(7, models.RoleUser)
	require.NoError(t, err)

	w := serveWithToken(r, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerRan, "endpoint must not execute for a non-admin token")
	// Exactly one JSON body: the rejection, nothing from the handler.
	assert.JSONEq(t, `{"error":"Insufficient permissions"}`, w.Body.String())
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	var handlerRan bool
	r := newAdminGatedRouter(&handlerRan)

	token, err := GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)

	w := serveWithToken(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerRan)
}

func TestRequireAdminMissingToken(t *testing.T) {
	var handlerRan bool
	r := newAdminGatedRouter(&handlerRan)

	w := serveWithToken(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerRan)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	// Same secret, different signing method: verification must fail.
	claims := jwt.MapClaims{
		"user_id": 1,
		"role":    models.RoleAdmin,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

func TestGenerateTokenCarriesSessionClaims(t *testing.T) {
	signed, err := GenerateToken(42, models.RoleUser)
	require.NoError(t, err)

	token, err := ValidateToken(signed)
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.NotEmpty(t, claims["jti"], "session correlation token must be present")
}
