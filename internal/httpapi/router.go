// Package httpapi exposes a read-only JSON view of the board over HTTP.
package httpapi

import (
	"net/http"

	"github.com/alexanderramin/cycleboard/internal/service"
	"github.com/gorilla/mux"
)

// Handler serves board reads. Query parameters override the stored session
// for one request and are never persisted.
type Handler struct {
	snapshots service.ImportService
	board     service.BoardService
	sessions  service.ViewSessionService
	sessionID string
}

func NewHandler(snapshots service.ImportService, board service.BoardService, sessions service.ViewSessionService, sessionID string) *Handler {
	return &Handler{
		snapshots: snapshots,
		board:     board,
		sessions:  sessions,
		sessionID: sessionID,
	}
}

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/views", h.listViews).Methods(http.MethodGet)
	api.HandleFunc("/board", h.getBoard).Methods(http.MethodGet)
	api.HandleFunc("/cycles", h.listCycles).Methods(http.MethodGet)
	api.HandleFunc("/snapshots", h.listSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.getSession).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "the API is read-only")
	})
	return r
}
