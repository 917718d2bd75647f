package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"

	"fintrack/internal/session"
	"fintrack/internal/storage/memory"
)

func signToken(t *testing.T, secret string, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	signing := enc(map[string]string{"alg": "HS256", "typ": "JWT"}) + "." + enc(claims)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signing))
	return signing + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func TestJWTAuthentication(t *testing.T) {
	const secret = "test-secret"
	store := memory.New()
	sessions := session.NewManager(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := New(sessions, store, AuthConfig{Secret: secret, Issuer: "fintrack"}, "EUR", logger)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	user := uuid.New()
	get := func(token string) int {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/income", nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	valid := signToken(t, secret, map[string]any{
		"iss": "fintrack",
		"sub": user.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusOK, get(valid))

	// with a secret configured the dev header is ignored
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/income", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", user.String())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, http.StatusUnauthorized, get(""))

	expired := signToken(t, secret, map[string]any{
		"iss": "fintrack",
		"sub": user.String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, get(expired))

	wrongIssuer := signToken(t, secret, map[string]any{
		"iss": "someone-else",
		"sub": user.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, get(wrongIssuer))

	badSignature := signToken(t, "other-secret", map[string]any{
		"iss": "fintrack",
		"sub": user.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, get(badSignature))

	notAUser := signToken(t, secret, map[string]any{
		"iss": "fintrack",
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, get(notAUser))
}
