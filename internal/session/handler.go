package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/session/activedate", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-active-date")
	r.HandleFunc("/session/activedate", handler.HandleSet).Methods("POST", "OPTIONS").Name("set-active-date")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	date := handler.tracker.ActiveDate(r.Context())
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"activeDate": %q}`, date))
}

type setDateRequest struct {
	Date string `json:"date"`
}

func (handler *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req setDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set active date failed, decode request: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return
	}

	if err := handler.tracker.SetActiveDate(r.Context(), req.Date); err != nil {
		if errors.Is(err, ErrInvalidDate) {
			http.Error(w, "error, invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		log.Errorf("set active date [%s]: %s", req.Date, err)
		http.Error(w, "error, failed to set active date", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"activeDate": %q}`, req.Date))
}
