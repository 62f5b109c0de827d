package importer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestFixture = `{
  "cycles": [
    {"id": "c1", "name": "Cycle 1", "startDate": "2024-01-01", "endDate": "2024-01-31", "state": "closed"},
    {"id": "c2", "name": "Cycle 2", "startDate": "2024-02-01", "delivery": "2024-03-10", "state": "Active"}
  ],
  "initiatives": [{"id": "ini-1", "name": "Checkout"}, {"id": "ini-2", "name": "Search"}],
  "areas": [{"id": "fe", "name": "frontend"}],
  "stages": [{"id": "s1", "name": "Build"}],
  "assignees": [{"id": "u1", "displayName": "Ada"}],
  "roadmapItems": [
    {"id": "r1", "name": "Small", "initiativeId": "ini-1", "area": "frontend",
     "releaseItems": [
       {"id": "x1", "status": "done", "effort": 1, "stage": "s1", "validations": "oops"}
     ]},
    {"id": "r2", "name": "Orphan", "area": {"id": "be", "name": "backend"},
     "releaseItems": [
       {"id": "x2", "status": "todo", "effort": "3", "sprint": {"id": "c2"}, "assignee": {"accountId": "acc-1"}}
     ]},
    {"id": "r3", "name": "Big", "initiativeId": "ini-2",
     "releaseItemIds": ["x3", "missing"]},
    {"id": "r4", "name": "Flat", "initiativeId": "ini-2"},
    {"id": "r5", "name": "Null initiative", "initiativeId": null, "releaseItems": []}
  ],
  "releaseItems": [
    {"id": "x3", "status": "In Progress", "effort": 4, "cycle": {"id": "c1"}, "validations": [{"name": "qa"}]},
    {"id": "x4", "roadmapItemId": "r4", "status": "replanned", "effort": 9},
    {"id": "x5", "roadmapItemId": "r4", "status": "done", "effort": "n/a"}
  ]
}`

func nestFromJSON(t *testing.T, body string) domain.NestedCycleData {
	t.Helper()
	raw, err := ParseRawCycleData([]byte(body))
	require.NoError(t, err)
	return Nest(raw)
}

func findInitiative(t *testing.T, d domain.NestedCycleData, id string) domain.Initiative {
	t.Helper()
	for _, ini := range d.Initiatives {
		if ini.ID == id {
			return ini
		}
	}
	t.Fatalf("initiative %q not found", id)
	return domain.Initiative{}
}

func TestNest_GroupsAndOrdersByWeeks(t *testing.T) {
	d := nestFromJSON(t, nestFixture)

	require.Len(t, d.Initiatives, 3)
	// ini-2: 4 weeks, unassigned: 3 weeks, ini-1: 1 week
	assert.Equal(t, "ini-2", d.Initiatives[0].ID)
	assert.Equal(t, domain.UnassignedInitiativeID, d.Initiatives[1].ID)
	assert.Equal(t, "ini-1", d.Initiatives[2].ID)

	assert.Equal(t, "Search", d.Initiatives[0].Name)
	assert.Equal(t, domain.UnassignedInitiativeName, d.Initiatives[1].Name)
	assert.Equal(t, 4.0, d.Initiatives[0].Progress.Weeks)
}

func TestNest_UnassignedCollectsMissingAndNullIDs(t *testing.T) {
	d := nestFromJSON(t, nestFixture)
	un := findInitiative(t, d, domain.UnassignedInitiativeID)
	require.Len(t, un.RoadmapItems, 2)
	assert.Equal(t, "r2", un.RoadmapItems[0].ID)
	assert.Equal(t, "r5", un.RoadmapItems[1].ID)
	assert.Equal(t, domain.UnassignedInitiativeID, un.RoadmapItems[0].InitiativeID)
}

func TestNest_FieldNormalization(t *testing.T) {
	d := nestFromJSON(t, nestFixture)

	ini1 := findInitiative(t, d, "ini-1")
	r1 := ini1.RoadmapItems[0]
	assert.Equal(t, "frontend", r1.Area)
	require.Len(t, r1.ReleaseItems, 1)
	assert.NotNil(t, r1.ReleaseItems[0].Validations)
	assert.Empty(t, r1.ReleaseItems[0].Validations, "non-array validations become empty")
	assert.Equal(t, "s1", r1.ReleaseItems[0].Stage)

	un := findInitiative(t, d, domain.UnassignedInitiativeID)
	r2 := un.RoadmapItems[0]
	assert.Equal(t, "backend", r2.Area, "area object collapses to its name")
	x2 := r2.ReleaseItems[0]
	assert.Equal(t, 3.0, x2.Effort, "numeric string effort")
	assert.Equal(t, "c2", x2.CycleID, "sprint object id")
	require.NotNil(t, x2.Assignee)
	assert.Equal(t, "acc-1", x2.Assignee.AccountID)

	r5 := un.RoadmapItems[1]
	assert.Equal(t, "", r5.Area, "missing area becomes empty")
	assert.Empty(t, r5.ReleaseItems)
}

func TestNest_CrossReferencedReleaseItems(t *testing.T) {
	d := nestFromJSON(t, nestFixture)
	ini2 := findInitiative(t, d, "ini-2")
	require.Len(t, ini2.RoadmapItems, 2)

	r3 := ini2.RoadmapItems[0]
	require.Len(t, r3.ReleaseItems, 1, "dangling id is skipped")
	assert.Equal(t, "x3", r3.ReleaseItems[0].ID)
	assert.Equal(t, "c1", r3.ReleaseItems[0].CycleID)
	assert.Len(t, r3.ReleaseItems[0].Validations, 1)

	r4 := ini2.RoadmapItems[1]
	require.Len(t, r4.ReleaseItems, 2, "flat rows found by roadmapItemId")
	assert.Equal(t, 0.0, r4.Progress.Weeks, "replanned skipped, non-numeric effort is 0")
	assert.Equal(t, 1, r4.Progress.ReleaseItemsCount)
	assert.Equal(t, 1, r4.Progress.ReleaseItemsDoneCount)
}

func TestNest_ProgressRollup(t *testing.T) {
	d := nestFromJSON(t, nestFixture)
	ini2 := findInitiative(t, d, "ini-2")
	assert.Equal(t, 4.0, ini2.Progress.Weeks)
	assert.Equal(t, 4.0, ini2.Progress.WeeksInProgress)
	assert.Equal(t, 2, ini2.Progress.ReleaseItemsCount)
	assert.Equal(t, 0, ini2.Progress.Progress)
	assert.Equal(t, 100, ini2.Progress.ProgressWithInProgress)
	assert.Equal(t, 50, ini2.Progress.ProgressByItemCount)
}

func TestNest_OverflowingEffortStaysEncodable(t *testing.T) {
	d := nestFromJSON(t, `{
	  "initiatives": [{"id": "ini-1", "name": "Huge"}],
	  "roadmapItems": [{"id": "r1", "initiativeId": "ini-1", "releaseItems": [
	    {"id": "x1", "status": "done", "effort": "Infinity"},
	    {"id": "x2", "status": "todo", "effort": 1e308},
	    {"id": "x3", "status": "todo", "effort": "1e308"}
	  ]}]
	}`)

	ini := findInitiative(t, d, "ini-1")
	assert.Equal(t, 0.0, ini.RoadmapItems[0].ReleaseItems[0].Effort)
	for _, m := range []domain.ProgressMetrics{ini.Progress, ini.RoadmapItems[0].Progress} {
		assert.GreaterOrEqual(t, m.Progress, 0)
		assert.LessOrEqual(t, m.Progress, 100)
		assert.GreaterOrEqual(t, m.ProgressWithInProgress, 0)
		assert.LessOrEqual(t, m.ProgressWithInProgress, 100)
	}

	_, err := json.Marshal(d)
	require.NoError(t, err)
}

func TestNest_DeliveryDateKeys(t *testing.T) {
	d := nestFromJSON(t, `{"cycles": [
	  {"id": "c1", "startDate": "2024-02-01", "deliveryDate": "2024-03-10"},
	  {"id": "c2", "startDate": "2024-02-01", "delivery": "2024-03-11", "deliveryDate": "2024-03-12"}
	]}`)
	require.Len(t, d.Cycles, 2)
	require.NotNil(t, d.Cycles[0].DeliveryDate)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *d.Cycles[0].DeliveryDate)
	assert.Equal(t, d.Cycles[0].DeliveryDate, d.Cycles[0].EffectiveEnd())
	require.NotNil(t, d.Cycles[1].DeliveryDate)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *d.Cycles[1].DeliveryDate)

	raw, err := ParseRawCycleData([]byte(`{"cycles": [{"id": "c1", "startDate": "2024-02-01", "deliveryDate": "2024-03-10"}]}`))
	require.NoError(t, err)
	for _, w := range Diagnose(raw) {
		assert.NotContains(t, w, "no endDate")
	}
}

func TestNest_ReferenceTables(t *testing.T) {
	d := nestFromJSON(t, nestFixture)
	require.Len(t, d.Cycles, 2)
	assert.Equal(t, domain.CycleActive, d.Cycles[1].State)
	require.NotNil(t, d.Cycles[0].StartDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *d.Cycles[0].StartDate)
	assert.Nil(t, d.Cycles[1].EndDate)
	require.NotNil(t, d.Cycles[1].DeliveryDate)

	assert.Equal(t, []domain.Area{{ID: "fe", Name: "frontend"}}, d.Areas)
	assert.Equal(t, []domain.Stage{{ID: "s1", Name: "Build"}}, d.Stages)
	assert.Equal(t, []domain.Assignee{{ID: "u1", DisplayName: "Ada"}}, d.Assignees)
}

func TestNest_StableTieBreak(t *testing.T) {
	d := nestFromJSON(t, `{"roadmapItems": [
		{"id": "a", "initiativeId": "first"},
		{"id": "b", "initiativeId": "second"},
		{"id": "c", "initiativeId": "third", "releaseItems": [{"status": "todo", "effort": 1}]}
	]}`)
	require.Len(t, d.Initiatives, 3)
	assert.Equal(t, "third", d.Initiatives[0].ID)
	assert.Equal(t, "first", d.Initiatives[1].ID)
	assert.Equal(t, "second", d.Initiatives[2].ID)
}

func TestNest_InitiativeNameFallbacks(t *testing.T) {
	d := nestFromJSON(t, `{"roadmapItems": [
		{"id": "a", "initiativeId": "ini-9", "initiative": {"name": "Inline Name"}},
		{"id": "b", "initiativeId": "ini-10"}
	]}`)
	assert.Equal(t, "Inline Name", findInitiative(t, d, "ini-9").Name)
	assert.Equal(t, "ini-10", findInitiative(t, d, "ini-10").Name)
}

func TestNest_DoesNotMutateInput(t *testing.T) {
	raw, err := ParseRawCycleData([]byte(nestFixture))
	require.NoError(t, err)
	before := len(raw.RoadmapItems[0].ReleaseItems)
	d := Nest(raw)
	d.Initiatives[0].RoadmapItems[0].Name = "changed"
	assert.Equal(t, before, len(raw.RoadmapItems[0].ReleaseItems))
	assert.Equal(t, "Big", raw.RoadmapItems[2].Name)
}

func TestNest_NilAndEmpty(t *testing.T) {
	assert.Equal(t, domain.NestedCycleData{}, Nest(nil))
	d := nestFromJSON(t, `{}`)
	assert.Empty(t, d.Initiatives)
	assert.Empty(t, d.Cycles)
}

func TestParseISODate(t *testing.T) {
	assert.NotNil(t, parseISODate("2024-02-01"))
	assert.NotNil(t, parseISODate("2024-02-01T10:00:00Z"))
	assert.NotNil(t, parseISODate("2024-02-01T10:00:00.000+02:00"))
	assert.Nil(t, parseISODate("01/02/2024"))
	assert.Nil(t, parseISODate(""))
}
