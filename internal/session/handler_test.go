package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkovacev/fitcheck/internal/kvstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerTestRouter() *mux.Router {
	tracker := newTestTracker(kvstore.NewMemoryStore())
	router := mux.NewRouter()
	NewHandler(tracker).SetupRoutes(router)
	return router
}

func TestHandler_GetActiveDate(t *testing.T) {
	router := newHandlerTestRouter()

	req := httptest.NewRequest("GET", "/session/activedate", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"activeDate": "2025-03-07"}`, rr.Body.String())
}

func TestHandler_SetActiveDate(t *testing.T) {
	router := newHandlerTestRouter()

	req := httptest.NewRequest("POST", "/session/activedate", strings.NewReader(`{"date": "2025-02-28"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"activeDate": "2025-02-28"}`, rr.Body.String())

	// the cursor moved
	req = httptest.NewRequest("GET", "/session/activedate", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.JSONEq(t, `{"activeDate": "2025-02-28"}`, rr.Body.String())
}

func TestHandler_SetActiveDate_BadRequest(t *testing.T) {
	router := newHandlerTestRouter()

	for name, body := range map[string]string{
		"not json":     `nope`,
		"invalid date": `{"date": "28.02.2025"}`,
		"empty date":   `{}`,
	} {
		req := httptest.NewRequest("POST", "/session/activedate", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "case %s", name)
	}
}
