package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kaamsaathi-backend/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"abc123", "abc123"},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, extractBearerToken(r), tt.header)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	handler := JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	SetJWTSecret("test-secret")

	handler := JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad token")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewarePassesIdentity(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := generateJWT("user-42", "a@example.com", "customer")
	require.NoError(t, err)

	var gotUserID, gotRole string
	handler := JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", gotUserID)
	assert.Equal(t, "customer", gotRole)
}

func TestRequireRole(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := generateJWT("user-42", "a@example.com", "customer")
	require.NoError(t, err)

	ran := false
	handler := JWTMiddleware(RequireRole("partner", func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/partner/availability", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, ran)
}

func TestCORSPreflight(t *testing.T) {
	handler := CORSMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should short-circuit")
	})

	r := httptest.NewRequest(http.MethodOptions, "/api/workers", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
