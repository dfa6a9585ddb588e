package offline

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mkovacev/fitcheck/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	synchronizer *Synchronizer
}

func NewHandler(synchronizer *Synchronizer) *Handler {
	return &Handler{synchronizer: synchronizer}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/assets", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-root-asset")
	r.HandleFunc("/assets/{path:.*}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-asset")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	path := "/" + mux.Vars(r)["path"]

	// page navigations get the cached root document as a last resort
	navigational := strings.Contains(r.Header.Get("Accept"), "text/html")

	asset, err := handler.synchronizer.Fetch(r.Context(), path, navigational)
	if errors.Is(err, ErrAssetUnavailable) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Errorf("get asset [%s]: %s", path, err)
		http.Error(w, "error, failed to get asset", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, asset.ContentType, asset.Body)
}
