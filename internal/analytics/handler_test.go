package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Overview(t *testing.T) {
	loader := newStateLoaderMock()
	loader.setDone(daysAgo(0), 10)
	handler := NewHandler(newTestAnalyzer(loader))

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	req := httptest.NewRequest("GET", "/analytics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var overview Overview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.Streak)
	assert.Equal(t, 1, overview.ActiveDays)
	assert.Len(t, overview.Heatmap, 34)
}

func TestHandler_Heatmap(t *testing.T) {
	loader := newStateLoaderMock()
	handler := NewHandler(newTestAnalyzer(loader))

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	req := httptest.NewRequest("GET", "/analytics/heatmap", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var cells []HeatmapCell
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cells))
	require.Len(t, cells, 34)
	assert.Equal(t, LevelBlank, cells[0].Level)
	assert.Equal(t, LevelNone, cells[len(cells)-1].Level)
}
