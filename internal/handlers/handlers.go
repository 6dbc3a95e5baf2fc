package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"packaging/internal/cache"
	"packaging/internal/events"
)

// validate checks decoded request bodies before any mutation.
var validate = validator.New()

// Handler wires storage, the catalog cache, and the event producer into the
// HTTP surface. Cache and Events may be nil.
type Handler struct {
	Store      StorageInterface
	Cache      *cache.Catalog
	Events     *events.Producer
	SessionTTL time.Duration
}

// NewHandler creates a Handler with the default session lifetime.
func NewHandler(store StorageInterface) *Handler {
	return &Handler{Store: store, SessionTTL: 24 * time.Hour}
}

// PingHandler answers "ok" for liveness checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError returns a structured {"error": ...} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads a size-capped JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
