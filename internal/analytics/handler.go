package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/analytics", handler.HandleOverview).Methods("GET", "OPTIONS").Name("get-analytics")
	r.HandleFunc("/analytics/heatmap", handler.HandleHeatmap).Methods("GET", "OPTIONS").Name("get-heatmap")
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview := handler.analyzer.GetOverview(r.Context())

	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("marshal analytics overview: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", overviewJson)
}

func (handler *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	cells := handler.analyzer.Heatmap(r.Context())

	cellsJson, err := json.Marshal(cells)
	if err != nil {
		log.Errorf("marshal heatmap: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", cellsJson)
}
