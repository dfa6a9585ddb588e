package retention

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkovacev/fitcheck/internal/kvstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerTestRouter(t *testing.T, kv kvstore.KeyValueStore) *mux.Router {
	t.Helper()
	handler := NewHandler(newTestManager(kv), 90)
	router := mux.NewRouter()
	handler.SetupRoutes(router)
	return router
}

func TestHandler_Purge(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	router := newHandlerTestRouter(t, kv)

	require.NoError(t, kv.Set(ctx, "state:"+daysAgo(100), []byte("x")))
	require.NoError(t, kv.Set(ctx, "state:"+daysAgo(1), []byte("x")))

	req := httptest.NewRequest("POST", "/admin/retention/purge", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"removed": 1}`, rr.Body.String())
}

func TestHandler_Purge_CustomDays(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	router := newHandlerTestRouter(t, kv)

	require.NoError(t, kv.Set(ctx, "state:"+daysAgo(10), []byte("x")))
	require.NoError(t, kv.Set(ctx, "state:"+daysAgo(1), []byte("x")))

	req := httptest.NewRequest("POST", "/admin/retention/purge?days=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"removed": 1}`, rr.Body.String())
}

func TestHandler_Purge_InvalidDays(t *testing.T) {
	router := newHandlerTestRouter(t, kvstore.NewMemoryStore())

	for _, days := range []string{"0", "-3", "abc"} {
		req := httptest.NewRequest("POST", "/admin/retention/purge?days="+days, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "days %q", days)
	}
}

func TestHandler_StorageInfo(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	router := newHandlerTestRouter(t, kv)

	require.NoError(t, kv.Set(ctx, "state:"+daysAgo(0), []byte("abcd")))

	req := httptest.NewRequest("GET", "/admin/storage", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var info StorageInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, 1, info.Entries)
	assert.Equal(t, 4, info.SizeBytes)
}
