package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/google/uuid"
)

// BoardExtract is a small, fully valid tracker extract:
//
//	ini-1 Checkout (6 weeks)
//	  r1 Cart redesign  frontend  x1 done 2w s1 u1 c1, x2 inprogress 1w s2 u2 c2
//	  r2 Payment API    backend   x3 todo 3w s1 u2 c2
//	ini-2 Search (4 weeks)
//	  r3 Query parser   backend   x4 done 4w s2 u1 c2
const BoardExtract = `{
  "cycles": [
    {"id": "c1", "name": "January", "startDate": "2024-01-01", "endDate": "2024-01-31", "state": "closed"},
    {"id": "c2", "name": "February", "startDate": "2024-02-01", "endDate": "2024-02-29", "state": "active"}
  ],
  "initiatives": [{"id": "ini-1", "name": "Checkout"}, {"id": "ini-2", "name": "Search"}],
  "areas": [{"id": "frontend", "name": "frontend"}, {"id": "backend", "name": "backend"}],
  "stages": [{"id": "s1", "name": "Build"}, {"id": "s2", "name": "Ship"}],
  "assignees": [
    {"id": "u1", "accountId": "acc-1", "displayName": "Ada"},
    {"id": "u2", "accountId": "acc-2", "displayName": "Lin"}
  ],
  "roadmapItems": [
    {"id": "r1", "name": "Cart redesign", "initiativeId": "ini-1", "area": "frontend", "releaseItems": [
      {"id": "x1", "name": "Cart UI", "area": "frontend", "status": "done", "effort": 2, "stage": "s1",
       "assignee": {"id": "u1", "accountId": "acc-1", "displayName": "Ada"}, "cycleId": "c1"},
      {"id": "x2", "name": "Cart tests", "area": "frontend", "status": "inprogress", "effort": 1, "stage": "s2",
       "assignee": {"id": "u2", "accountId": "acc-2", "displayName": "Lin"}, "cycleId": "c2"}
    ]},
    {"id": "r2", "name": "Payment API", "initiativeId": "ini-1", "area": "backend", "releaseItems": [
      {"id": "x3", "name": "Charge endpoint", "area": "backend", "status": "todo", "effort": 3, "stage": "s1",
       "assignee": {"id": "u2", "accountId": "acc-2", "displayName": "Lin"}, "cycleId": "c2"}
    ]},
    {"id": "r3", "name": "Query parser", "initiativeId": "ini-2", "area": "backend", "releaseItems": [
      {"id": "x4", "name": "Tokenizer", "area": "backend", "status": "done", "effort": 4, "stage": "s2",
       "assignee": {"id": "u1", "accountId": "acc-1", "displayName": "Ada"}, "cycleId": "c2"}
    ]}
  ]
}`

// BoardNow falls inside the active cycle of BoardExtract.
var BoardNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

// WriteExtract writes body to a file in a per-test temp dir and returns its path.
func WriteExtract(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extract.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing extract: %v", err)
	}
	return path
}

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

func WithFetchedAt(at time.Time) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.FetchedAt = at
	}
}

func WithRaw(raw string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Raw = []byte(raw)
	}
}

func WithSource(src string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Source = src
	}
}

// NewTestSnapshot builds a snapshot of BoardExtract with a fresh id.
func NewTestSnapshot(opts ...SnapshotOption) *domain.Snapshot {
	s := &domain.Snapshot{
		ID:               uuid.New().String(),
		Source:           "extract.json",
		FetchedAt:        BoardNow,
		Raw:              []byte(BoardExtract),
		InitiativeCount:  2,
		RoadmapItemCount: 3,
		ReleaseItemCount: 4,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
