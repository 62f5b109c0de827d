package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/gorilla/mux"
)

type viewPayload struct {
	Name string   `json:"name"`
	Keys []string `json:"keys"`
}

type viewsPayload struct {
	DefaultView string        `json:"defaultView"`
	Views       []viewPayload `json:"views"`
}

type sessionPayload struct {
	ID            string                 `json:"id"`
	View          string                 `json:"view"`
	Views         []string               `json:"views"`
	AvailableKeys []string               `json:"availableKeys"`
	Filters       domain.ViewFilterState `json:"filters"`
	Criteria      domain.FilterCriteria  `json:"criteria"`
	UpdatedAt     *time.Time             `json:"updatedAt,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listViews(w http.ResponseWriter, _ *http.Request) {
	reg := h.sessions.Registry()
	out := viewsPayload{DefaultView: string(reg.DefaultView())}
	for _, v := range reg.Views() {
		vp := viewPayload{Name: string(v), Keys: []string{}}
		for _, k := range reg.KeysFor(v) {
			vp.Keys = append(vp.Keys, string(k))
		}
		out.Views = append(out.Views, vp)
	}
	writeJSON(w, http.StatusOK, out)
}

// getBoard accepts ?snapshot=, ?session=, ?view= and one parameter per
// filter. List parameters may repeat or carry comma-separated values.
func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sessionID := h.sessionID
	if q.Has("session") {
		sessionID = q.Get("session")
	}
	req := contract.NewBoardRequest(sessionID)
	req.SnapshotID = q.Get("snapshot")
	req.View = q.Get("view")
	for _, p := range contract.FilterParams {
		if !q.Has(p.Name) {
			continue
		}
		req = contract.WithOverride(req, p.Key, splitValues(q[p.Name])...)
	}

	resp, err := h.board.GetBoard(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewBoardDocument(resp))
}

func (h *Handler) listCycles(w http.ResponseWriter, r *http.Request) {
	views, err := h.board.ListCycles(r.Context(), r.URL.Query().Get("snapshot"), time.Now().UTC())
	if err != nil {
		writeFailure(w, err)
		return
	}
	if views == nil {
		views = []domain.CycleView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) listSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	snapshots, err := h.snapshots.ListSnapshots(r.Context(), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []*domain.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, err)
		return
	}
	out := sessionPayload{
		ID:            v.ID,
		View:          v.View,
		Views:         v.Views,
		AvailableKeys: v.AvailableKeys,
		Filters:       v.Filters,
		Criteria:      v.Criteria,
	}
	if !v.UpdatedAt.IsZero() {
		out.UpdatedAt = &v.UpdatedAt
	}
	writeJSON(w, http.StatusOK, out)
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
