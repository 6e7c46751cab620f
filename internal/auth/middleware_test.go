package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("gate-secret")

func gateEcho(t *testing.T) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ClaimsFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(claims.UID))
	})
	return Gate(testSecret, []string{"/api/login"}, zap.NewNop().Sugar())(next)
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestGatePublicPathBypassesAuth(t *testing.T) {
	t.Parallel()

	passed := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed = true
		// no identity expected on public paths
		_, err := ClaimsFromContext(r.Context())
		assert.ErrorIs(t, err, ErrNoIdentity)
	})
	h := Gate(testSecret, []string{"/api/login"}, zap.NewNop().Sugar())(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
	assert.True(t, passed)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateMissingToken(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	gateEcho(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", message(t, rec))
}

func TestGateBearerHeader(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(testSecret, "u-77", "x@y.com", "Xy")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gateEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-77", rec.Body.String())
}

func TestGateQueryParamFallback(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(testSecret, "u-88", "q@y.com", "Qu")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/todos?token="+tok, nil)
	rec := httptest.NewRecorder()
	gateEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-88", rec.Body.String())
}

func TestGateExpiredTokenIsDistinct(t *testing.T) {
	t.Parallel()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UID: "u-9",
	})
	tok, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gateEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", message(t, rec))
}

func TestGateInvalidToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	gateEcho(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", message(t, rec))
}
