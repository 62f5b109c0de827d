package contract

import (
	"time"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/domain"
)

type BoardRequest = app.BoardRequest

type BoardResponse = app.BoardResponse

type BoardErrorCode = app.BoardErrorCode

const (
	BoardErrNoSnapshot      BoardErrorCode = app.BoardErrNoSnapshot
	BoardErrCorruptSnapshot BoardErrorCode = app.BoardErrCorruptSnapshot
)

type BoardError = app.BoardError

// NewBoardRequest builds a request for the given session at the current time.
func NewBoardRequest(sessionID string) BoardRequest {
	now := time.Now().UTC()
	return BoardRequest{SessionID: sessionID, Now: &now}
}

// WithOverride appends a per-request filter override. Empty values are
// skipped so unset CLI flags and query parameters do not clear session
// filters.
func WithOverride(req BoardRequest, key string, values ...string) BoardRequest {
	var kept []string
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return req
	}
	req.Overrides = append(append([]app.FilterOverride(nil), req.Overrides...), app.FilterOverride{Key: key, Values: kept})
	return req
}

// FilterParam maps a singular CLI flag or query parameter to the filter
// key it sets.
type FilterParam struct {
	Name string
	Key  string
}

// FilterParams lists the board overrides in the order they are applied.
var FilterParams = []FilterParam{
	{Name: "area", Key: "area"},
	{Name: "initiative", Key: "initiatives"},
	{Name: "stage", Key: "stages"},
	{Name: "assignee", Key: "assignees"},
	{Name: "cycle", Key: "cycle"},
}

// BoardDocument is the JSON shape of a board shared by "board --json" and
// the HTTP API.
type BoardDocument struct {
	SnapshotID        string                 `json:"snapshotId"`
	FetchedAt         time.Time              `json:"fetchedAt"`
	View              string                 `json:"view"`
	AvailableKeys     []string               `json:"availableKeys"`
	Criteria          domain.FilterCriteria  `json:"criteria"`
	Data              domain.NestedCycleData `json:"data"`
	TotalInitiatives  int                    `json:"totalInitiatives"`
	TotalRoadmapItems int                    `json:"totalRoadmapItems"`
	TotalReleaseItems int                    `json:"totalReleaseItems"`
	Cycles            []domain.CycleView     `json:"cycles"`
	ActiveCycle       *domain.CycleView      `json:"activeCycle,omitempty"`
}

func NewBoardDocument(resp *BoardResponse) BoardDocument {
	return BoardDocument{
		SnapshotID:        resp.SnapshotID,
		FetchedAt:         resp.FetchedAt,
		View:              resp.View,
		AvailableKeys:     resp.AvailableKeys,
		Criteria:          resp.Criteria,
		Data:              resp.Result.Data,
		TotalInitiatives:  resp.Result.TotalInitiatives,
		TotalRoadmapItems: resp.Result.TotalRoadmapItems,
		TotalReleaseItems: resp.Result.TotalReleaseItems,
		Cycles:            resp.Cycles,
		ActiveCycle:       resp.ActiveCycle,
	}
}
