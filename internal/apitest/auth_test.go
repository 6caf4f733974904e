package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(b *Backend) http.Handler {
	return b.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			http.Error(w, "userID not found", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(userID))
	}))
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRequireAuth_MissingAuthorization(t *testing.T) {
	rr := serve(protected(New(logger.Discard())), "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "You are not logged in"))
}

func TestRequireAuth_InvalidAuthorizationFormat(t *testing.T) {
	rr := serve(protected(New(logger.Discard())), "InvalidFormat")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token format"))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	rr := serve(protected(New(logger.Discard())), "Bearer invalid.token.value")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "Invalid token"))
}

func TestRequireAuth_ForeignSecret(t *testing.T) {
	b := New(logger.Discard())
	user := b.AddUser("Ann", "ann@example.com", "secret123", 0)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": user.ID})
	tokenStr, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rr := serve(protected(b), "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	b := New(logger.Discard())
	b.tokenTTL = -time.Minute
	user := b.AddUser("Ann", "ann@example.com", "secret123", 0)

	tokenStr, err := b.newToken(user.ID, user.Email)
	require.NoError(t, err)

	rr := serve(protected(b), "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	b := New(logger.Discard())
	user := b.AddUser("Ann", "ann@example.com", "secret123", 0)

	tokenStr, err := b.newToken(user.ID, user.Email)
	require.NoError(t, err)

	rr := serve(protected(b), "Bearer "+tokenStr)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, user.ID, rr.Body.String())
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	b := New(logger.Discard())
	user := b.AddUser("Ann", "ann@example.com", "secret123", 0)

	tokenStr, err := b.newToken(user.ID, user.Email)
	require.NoError(t, err)
	b.mu.Lock()
	b.revoked[tokenStr] = struct{}{}
	b.mu.Unlock()

	rr := serve(protected(b), "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "does no longer exist")
}

func TestBackend_FailAndRecover(t *testing.T) {
	b := New(logger.Discard())
	b.Fail(http.MethodGet, "/products", http.StatusServiceUnavailable, "maintenance")
	router := b.Router()

	req := httptest.NewRequest(http.MethodGet, BasePath+"/products", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "maintenance")

	b.Recover()
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/products", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, b.Calls(http.MethodGet, "/products"))
}
