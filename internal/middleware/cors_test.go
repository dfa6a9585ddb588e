package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCors(origin, userAgent, path string) *httptest.ResponseRecorder {
	handler := Cors()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCors_NoOrigin(t *testing.T) {
	rr := execCors("", "", "/checklist/2025-03-07")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_AllowedOrigin(t *testing.T) {
	for _, origin := range []string{"http://localhost:8080", "http://localhost:5173"} {
		rr := execCors(origin, "Mozilla/5.0", "/checklist/2025-03-07")
		require.Equal(t, http.StatusOK, rr.Code, "origin %s", origin)
		assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestCors_ForbiddenOrigin(t *testing.T) {
	rr := execCors("http://evil.example.com", "Mozilla/5.0", "/checklist/2025-03-07")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCors_AssetsPathAlwaysAllowed(t *testing.T) {
	rr := execCors("http://anywhere.example.com", "Mozilla/5.0", "/assets/app.js")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://anywhere.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_CurlAllowed(t *testing.T) {
	rr := execCors("http://anywhere.example.com", "curl/8.4.0", "/checklist/2025-03-07")
	assert.Equal(t, http.StatusOK, rr.Code)
}
