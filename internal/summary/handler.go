package summary

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"
	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	store   *Store
	metrics *metrics.Manager
}

func NewHandler(service *Service, store *Store, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		store:   store,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/summary/{date}", handler.HandleSave).Methods("POST", "OPTIONS").Name("save-summary")
	r.HandleFunc("/summary/{date}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-summary")
	r.HandleFunc("/summary/{date}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-summary")
}

func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := mux.Vars(r)["date"]
	if !pkg.IsValidDay(date) {
		http.Error(w, "error, invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	saved, err := handler.service.SaveForDay(r.Context(), date)
	if errors.Is(err, ErrNothingDone) {
		http.Error(w, "select at least 1 workout before saving", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("save summary [%s]: %s", date, err)
		http.Error(w, "error, failed to save summary", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSummariesSaved.Inc()
	log.Printf("summary saved: [%s] %d/%d (%d%%)", saved.Date, saved.Done, saved.Total, saved.Percent)

	handler.writeSummary(w, saved)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	saved, err := handler.store.Load(r.Context(), date)
	if errors.Is(err, ErrSummaryNotFound) {
		http.Error(w, "no summary saved for this date", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get summary [%s]: %s", date, err)
		http.Error(w, "error, failed to get summary", http.StatusInternalServerError)
		return
	}

	handler.writeSummary(w, saved)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := handler.store.Delete(r.Context(), date); err != nil {
		log.Errorf("delete summary [%s]: %s", date, err)
		http.Error(w, "error, summary not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", "deleted:"+date)
}

func (handler *Handler) writeSummary(w http.ResponseWriter, saved *DailySummary) {
	summaryJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("marshal summary [%s]: %s", saved.Date, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", summaryJson)
}
