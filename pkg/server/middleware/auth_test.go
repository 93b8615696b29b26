package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	auth := NewTokenAuthenticator("test-secret", time.Hour)

	token, err := auth.Issue("editor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "editor", username)
}

func TestIssueRequiresSecret(t *testing.T) {
	auth := NewTokenAuthenticator("", time.Hour)
	_, err := auth.Issue("editor")
	assert.Error(t, err)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	auth := NewTokenAuthenticator("test-secret", time.Hour)
	other := NewTokenAuthenticator("other-secret", time.Hour)

	token, err := other.Issue("editor")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	auth := NewTokenAuthenticator("test-secret", time.Millisecond)

	token, err := auth.Issue("editor")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = auth.Verify(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	auth := NewTokenAuthenticator("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(Actor(r.Context())))
	})
	handler := auth.Middleware(next)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/regions", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/regions", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/regions", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches handler with actor", func(t *testing.T) {
		token, err := auth.Issue("editor")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/regions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "editor", w.Body.String())
	})
}

func TestActorEmptyWithoutContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, Actor(req.Context()))
}
