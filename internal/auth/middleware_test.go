package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *TokenService) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	tokens, err := NewTokenService("test-secret-0123456789")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/whoami", Middleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r, tokens
}

func TestMiddleware_ValidToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, err := tokens.Generate("user-42")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestMiddleware_Rejections(t *testing.T) {
	r, _ := newAuthRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"bad token", "Bearer nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
