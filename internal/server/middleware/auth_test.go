package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct{ valid string }

func (f fakeVerifier) VerifyKey(key, storedHash string) bool {
	return storedHash == "stored-hash" && key == f.valid
}

func protected(t *testing.T, keyHash string) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(fakeVerifier{valid: "good-key"}, keyHash)(next)
}

func TestAPIKeyAuth_BearerHeader(t *testing.T) {
	handler := protected(t, "stored-hash")

	req := httptest.NewRequest(http.MethodGet, "/api/email-styles", nil)
	req.Header.Set("Authorization", "Bearer good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuth_XAPIKeyHeader(t *testing.T) {
	handler := protected(t, "stored-hash")

	req := httptest.NewRequest(http.MethodGet, "/api/email-styles", nil)
	req.Header.Set("X-API-Key", "good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuth_RejectsBadKey(t *testing.T) {
	handler := protected(t, "stored-hash")

	for _, setup := range []func(*http.Request){
		func(r *http.Request) {},
		func(r *http.Request) { r.Header.Set("Authorization", "Bearer wrong-key") },
		func(r *http.Request) { r.Header.Set("Authorization", "Basic good-key") },
		func(r *http.Request) { r.Header.Set("X-API-Key", "wrong-key") },
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/email-styles", nil)
		setup(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	}
}

func TestAPIKeyAuth_EmptyHashDisablesAuth(t *testing.T) {
	handler := protected(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/email-styles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
