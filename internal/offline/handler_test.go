package offline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkovacev/fitcheck/internal/kvstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Get(t *testing.T) {
	upstream := newUpstreamMock(t)
	kv := kvstore.NewMemoryStore()
	s := newTestSynchronizer(t, upstream, kv, "workout-v1")

	router := mux.NewRouter()
	NewHandler(s).SetupRoutes(router)

	req := httptest.NewRequest("GET", "/assets/app.js", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/javascript", rr.Header().Get("Content-Type"))
	assert.Equal(t, "console.log('app')", rr.Body.String())

	// let the detached cache write land before the cache is torn down
	require.Eventually(t, func() bool {
		_, err := kv.Get(context.Background(), "cache:workout-v1:/app.js")
		return err == nil
	}, time.Second, 5*time.Millisecond)
	s.Wait()
}

func TestHandler_Get_NotFound(t *testing.T) {
	upstream := newUpstreamMock(t)
	s := newTestSynchronizer(t, upstream, kvstore.NewMemoryStore(), "workout-v1")

	router := mux.NewRouter()
	NewHandler(s).SetupRoutes(router)

	req := httptest.NewRequest("GET", "/assets/no-such-file.png", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Get_NavigationalFallback(t *testing.T) {
	ctx := context.Background()
	upstream := newUpstreamMock(t)
	kv := kvstore.NewMemoryStore()
	s := newTestSynchronizer(t, upstream, kv, "workout-v1")

	_, err := s.Fetch(ctx, RootDocument, false)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := kv.Get(ctx, "cache:workout-v1:/index.html")
		return err == nil
	}, time.Second, 5*time.Millisecond)
	s.Wait()

	upstream.failing.Store(true)

	router := mux.NewRouter()
	NewHandler(s).SetupRoutes(router)

	// a browser page navigation sends Accept: text/html
	req := httptest.NewRequest("GET", "/assets/some/page", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>checklist</html>", rr.Body.String())

	// a fetch for a script does not fall back
	req = httptest.NewRequest("GET", "/assets/some/script.js", nil)
	req.Header.Set("Accept", "*/*")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
