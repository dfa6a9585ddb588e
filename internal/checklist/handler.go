package checklist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkovacev/fitcheck/internal/catalog"
	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"
	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// summaryDeleter is implemented by the summary store; resetting a day also
// drops its saved summary.
type summaryDeleter interface {
	Delete(ctx context.Context, date string) error
}

type Handler struct {
	store     *StateStore
	catalog   *catalog.Catalog
	summaries summaryDeleter
	metrics   *metrics.Manager
}

func NewHandler(
	store *StateStore,
	cat *catalog.Catalog,
	summaries summaryDeleter,
	metrics *metrics.Manager,
) *Handler {
	return &Handler{
		store:     store,
		catalog:   cat,
		summaries: summaries,
		metrics:   metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/checklist/{date}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-checklist")
	r.HandleFunc("/checklist/{date}/check", handler.HandleCheck).Methods("POST", "OPTIONS").Name("toggle-check")
	r.HandleFunc("/checklist/{date}/notes", handler.HandleNotes).Methods("POST", "OPTIONS").Name("set-notes")
	r.HandleFunc("/checklist/{date}/reset", handler.HandleReset).Methods("POST", "OPTIONS").Name("reset-checklist")
	r.HandleFunc("/checklist/{date}/export", handler.HandleExport).Methods("GET", "OPTIONS").Name("export-checklist")
	r.HandleFunc("/catalog", handler.HandleCatalog).Methods("GET", "OPTIONS").Name("get-catalog")
}

func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := mux.Vars(r)["date"]
	if !pkg.IsValidDay(date) {
		http.Error(w, "error, invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

type dayResponse struct {
	Date  string      `json:"date"`
	State *DailyState `json:"state"`
	Stats Stats       `json:"stats"`
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	state := handler.store.Load(r.Context(), date)
	handler.writeDayResponse(w, date, state)
}

type checkRequest struct {
	ID   string `json:"id"`
	Done bool   `json:"done"`
}

func (handler *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("toggle check failed, decode request: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	state := handler.store.Load(r.Context(), date)
	state.Checks[req.ID] = req.Done

	if err := handler.store.Save(r.Context(), date, state); err != nil {
		log.Errorf("toggle check [%s] [%s]: %s", date, req.ID, err)
		http.Error(w, "error, failed to save state", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterChecks.Inc()
	handler.writeDayResponse(w, date, state)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (handler *Handler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set notes failed, decode request: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}

	state := handler.store.Load(r.Context(), date)
	state.Notes = req.Notes

	if err := handler.store.Save(r.Context(), date, state); err != nil {
		log.Errorf("set notes [%s]: %s", date, err)
		http.Error(w, "error, failed to save state", http.StatusInternalServerError)
		return
	}

	handler.writeDayResponse(w, date, state)
}

// HandleReset clears checks and notes for the day and deletes any saved
// summary for it. Resetting an untouched day is a no-op that still succeeds.
func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := handler.store.Reset(r.Context(), date); err != nil {
		log.Errorf("reset day [%s]: %s", date, err)
		http.Error(w, "error, failed to reset day", http.StatusInternalServerError)
		return
	}

	if err := handler.summaries.Delete(r.Context(), date); err != nil {
		log.Errorf("reset day [%s], delete summary: %s", date, err)
		http.Error(w, "error, failed to delete summary", http.StatusInternalServerError)
		return
	}

	log.Printf("day reset: [%s]", date)
	handler.writeDayResponse(w, date, NewDailyState())
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	state := handler.store.Load(r.Context(), date)
	text := ExportText(date, state, handler.catalog)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName(date)))
	pkg.WriteTextResponseOK(w, text)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	catalogJson, err := json.Marshal(handler.catalog)
	if err != nil {
		log.Errorf("marshal catalog: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", catalogJson)
}

func (handler *Handler) writeDayResponse(w http.ResponseWriter, date string, state *DailyState) {
	resp := dayResponse{
		Date:  date,
		State: state,
		Stats: ComputeStats(state, handler.catalog),
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal day response [%s]: %s", date, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", respJson)
}
