package domain

// UnassignedInitiativeID groups roadmap items that carry no initiative id.
const (
	UnassignedInitiativeID   = "unassigned"
	UnassignedInitiativeName = "Unassigned Initiative"
)

// Assignee identifies a person. Either ID or AccountID may be set; both are
// valid equivalence keys.
type Assignee struct {
	ID          string `json:"id"`
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// Keys returns the non-empty identifiers of the assignee.
func (a *Assignee) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, 0, 2)
	if a.ID != "" {
		keys = append(keys, a.ID)
	}
	if a.AccountID != "" && a.AccountID != a.ID {
		keys = append(keys, a.AccountID)
	}
	return keys
}

// Validation is one opaque validation record attached to a release item.
type Validation map[string]any

// ReleaseItem is the smallest tracked unit of work.
type ReleaseItem struct {
	ID       string   `json:"id"`
	TicketID string   `json:"ticketId"`
	Name     string   `json:"name"`
	Area     string   `json:"area"`
	AreaIDs  []string `json:"areaIds"`
	Stage    string   `json:"stage"`
	Status   string   `json:"status"`
	// Effort is in weeks; zero when the extract value was missing or non-numeric.
	Effort      float64      `json:"effort"`
	Assignee    *Assignee    `json:"assignee,omitempty"`
	CycleID     string       `json:"cycleId"`
	Validations []Validation `json:"validations"`
}

// NormalizedStatus returns the parsed status of the item.
func (r *ReleaseItem) NormalizedStatus() ReleaseStatus {
	return ParseReleaseStatus(r.Status)
}

// RoadmapItem is a planned deliverable under an initiative.
type RoadmapItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	InitiativeID string          `json:"initiativeId"`
	Area         string          `json:"area"`
	Theme        string          `json:"theme"`
	Team         string          `json:"team"`
	URL          string          `json:"url"`
	ReleaseItems []ReleaseItem   `json:"releaseItems"`
	Progress     ProgressMetrics `json:"progress"`
}

// Initiative is the top-level grouping of roadmap items.
type Initiative struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	RoadmapItems []RoadmapItem   `json:"roadmapItems"`
	Progress     ProgressMetrics `json:"progress"`
}

// Area is a product or team ownership classification.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stage is a delivery-pipeline classification of a release item.
type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InitiativeRef is an entry of the extract's initiative reference table.
type InitiativeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NestedCycleData is the canonical hierarchy produced at ingestion.
// Downstream code relies on this one shape only.
type NestedCycleData struct {
	Initiatives []Initiative `json:"initiatives"`
	Cycles      []Cycle      `json:"cycles"`
	Areas       []Area       `json:"areas"`
	Assignees   []Assignee   `json:"assignees"`
	Stages      []Stage      `json:"stages"`
}

// Counts returns the number of initiatives, roadmap items and release items.
func (d *NestedCycleData) Counts() (initiatives, roadmapItems, releaseItems int) {
	initiatives = len(d.Initiatives)
	for _, ini := range d.Initiatives {
		roadmapItems += len(ini.RoadmapItems)
		for _, rm := range ini.RoadmapItems {
			releaseItems += len(rm.ReleaseItems)
		}
	}
	return initiatives, roadmapItems, releaseItems
}
