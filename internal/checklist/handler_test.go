package checklist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkovacev/fitcheck/internal/catalog"
	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryDeleterMock struct {
	deletedDates []string
}

func (m *summaryDeleterMock) Delete(_ context.Context, date string) error {
	m.deletedDates = append(m.deletedDates, date)
	return nil
}

type handlerTestSetup struct {
	router    *mux.Router
	store     *StateStore
	summaries *summaryDeleterMock
}

func newHandlerTestSetup(t *testing.T) *handlerTestSetup {
	t.Helper()

	store := NewStateStore(kvstore.NewMemoryStore())
	summaries := &summaryDeleterMock{}
	handler := NewHandler(store, catalog.Default(), summaries, metrics.NewTestManager())

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	return &handlerTestSetup{
		router:    router,
		store:     store,
		summaries: summaries,
	}
}

func (s *handlerTestSetup) exec(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Get(t *testing.T) {
	s := newHandlerTestSetup(t)

	rr := s.exec("GET", "/checklist/2025-03-07", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dayResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-07", resp.Date)
	assert.Empty(t, resp.State.Checks)
	assert.Equal(t, 0, resp.Stats.Done)
	assert.Equal(t, 30, resp.Stats.Total)
}

func TestHandler_Get_InvalidDate(t *testing.T) {
	s := newHandlerTestSetup(t)

	for _, date := range []string{"2025-3-7", "tomorrow", "2025-03-07T10:00"} {
		rr := s.exec("GET", "/checklist/"+date, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "date %q", date)
	}
}

func TestHandler_Check(t *testing.T) {
	s := newHandlerTestSetup(t)

	rr := s.exec("POST", "/checklist/2025-03-07/check", `{"id": "lower_0", "done": true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dayResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.State.Checks["lower_0"])
	assert.Equal(t, 1, resp.Stats.Done)

	// uncheck keeps the key with a false value
	rr = s.exec("POST", "/checklist/2025-03-07/check", `{"id": "lower_0", "done": false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	done, present := resp.State.Checks["lower_0"]
	assert.True(t, present)
	assert.False(t, done)
	assert.Equal(t, 0, resp.Stats.Done)
}

func TestHandler_Check_BadRequest(t *testing.T) {
	s := newHandlerTestSetup(t)

	rr := s.exec("POST", "/checklist/2025-03-07/check", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.exec("POST", "/checklist/2025-03-07/check", `{"done": true}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Notes(t *testing.T) {
	s := newHandlerTestSetup(t)

	rr := s.exec("POST", "/checklist/2025-03-07/notes", `{"notes": "felt strong"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := s.store.Load(context.Background(), "2025-03-07")
	assert.Equal(t, "felt strong", state.Notes)

	// clearing notes
	rr = s.exec("POST", "/checklist/2025-03-07/notes", `{"notes": ""}`)
	require.Equal(t, http.StatusOK, rr.Code)
	state = s.store.Load(context.Background(), "2025-03-07")
	assert.Empty(t, state.Notes)
}

func TestHandler_Reset(t *testing.T) {
	s := newHandlerTestSetup(t)
	ctx := context.Background()

	state := NewDailyState()
	state.Checks["lower_0"] = true
	state.Notes = "notes"
	require.NoError(t, s.store.Save(ctx, "2025-03-07", state))

	rr := s.exec("POST", "/checklist/2025-03-07/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)

	loaded := s.store.Load(ctx, "2025-03-07")
	assert.Empty(t, loaded.Checks)
	assert.Empty(t, loaded.Notes)
	assert.Equal(t, []string{"2025-03-07"}, s.summaries.deletedDates)

	// reset is idempotent
	rr = s.exec("POST", "/checklist/2025-03-07/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_Export(t *testing.T) {
	s := newHandlerTestSetup(t)
	ctx := context.Background()

	state := NewDailyState()
	state.Checks["lower_0"] = true
	require.NoError(t, s.store.Save(ctx, "2025-03-07", state))

	rr := s.exec("GET", "/checklist/2025-03-07/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q", "workout-2025-03-07.txt"),
		rr.Header().Get("Content-Disposition"),
	)
	assert.Contains(t, rr.Body.String(), "✅ Squats (Deep, controlled)")
	assert.Contains(t, rr.Body.String(), "LOWER")
}

func TestHandler_Catalog(t *testing.T) {
	s := newHandlerTestSetup(t)

	rr := s.exec("GET", "/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got catalog.Catalog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *catalog.Default(), got)
}
