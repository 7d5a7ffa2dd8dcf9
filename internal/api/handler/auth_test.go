package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return &Handler{JWTSecret: []byte("test-secret")}
}

func TestJWT_RoundTrip(t *testing.T) {
	h := newTestHandler()

	token, err := h.generateJWT("user-1")
	require.NoError(t, err)

	userID, err := h.validateAndGetUserID(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	h := newTestHandler()
	token, err := h.generateJWT("user-1")
	require.NoError(t, err)

	other := &Handler{JWTSecret: []byte("different-secret")}
	_, err = other.validateAndGetUserID(token)
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	h := newTestHandler()
	_, err := h.validateAndGetUserID("not-a-token")
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()

	r := gin.New()
	r.GET("/protected", h.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": currentUserID(c)})
	})

	// No header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	token, err := h.generateJWT("user-1")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}
