package retention

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	manager     *Manager
	defaultDays int
}

func NewHandler(manager *Manager, defaultDays int) *Handler {
	return &Handler{
		manager:     manager,
		defaultDays: defaultDays,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/admin/retention/purge", handler.HandlePurge).Methods("POST", "OPTIONS").Name("retention-purge")
	r.HandleFunc("/admin/storage", handler.HandleStorageInfo).Methods("GET", "OPTIONS").Name("storage-info")
}

func (handler *Handler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	days := handler.defaultDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid days parameter (must be positive integer)", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	removed, err := handler.manager.PurgeOlderThan(r.Context(), days)
	if err != nil {
		log.Errorf("retention purge [%d days]: %s", days, err)
		http.Error(w, "error, purge failed", http.StatusInternalServerError)
		return
	}

	log.Printf("retention purge [%d days]: %d entries removed", days, removed)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"removed": %d}`, removed))
}

func (handler *Handler) HandleStorageInfo(w http.ResponseWriter, r *http.Request) {
	info, err := handler.manager.GetStorageInfo(r.Context())
	if err != nil {
		log.Errorf("get storage info: %s", err)
		http.Error(w, "error, failed to get storage info", http.StatusInternalServerError)
		return
	}

	infoJson, err := json.Marshal(info)
	if err != nil {
		log.Errorf("marshal storage info: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, "application/json", infoJson)
}
