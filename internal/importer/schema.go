package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// RawCycleData is the flat, denormalized extract produced by the issue
// tracker export. Every collection is optional.
type RawCycleData struct {
	Cycles       []RawCycle       `json:"cycles"`
	RoadmapItems []RawRoadmapItem `json:"roadmapItems"`
	ReleaseItems []RawReleaseItem `json:"releaseItems"`
	Areas        []RawRef         `json:"areas"`
	Initiatives  []RawRef         `json:"initiatives"`
	Assignees    []RawAssignee    `json:"assignees"`
	Stages       []RawRef         `json:"stages"`
}

// RawCycle is a cycle row. Dates are ISO-8601 strings.
type RawCycle struct {
	ID           FlexID `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	DeliveryDate string `json:"delivery"`
	// DeliveryDateKey is the same date under the "deliveryDate" key.
	DeliveryDateKey string `json:"deliveryDate"`
	State           string `json:"state"`
}

// Delivery returns the delivery date from whichever key carried it.
func (c *RawCycle) Delivery() string {
	return domain.CoalesceTrimmed(c.DeliveryDate, c.DeliveryDateKey)
}

// RawRef is a generic id/name reference row (areas, initiatives, stages).
type RawRef struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawAssignee identifies a person by id or accountId.
type RawAssignee struct {
	ID          FlexID `json:"id"`
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// RawRoadmapItem is a roadmap item row. Release items are either embedded,
// referenced by id, or found in the flat table by their roadmapItemId.
type RawRoadmapItem struct {
	ID             FlexID           `json:"id"`
	Name           string           `json:"name"`
	InitiativeID   FlexID           `json:"initiativeId"`
	Initiative     FlexString       `json:"initiative"`
	Area           FlexString       `json:"area"`
	Theme          FlexString       `json:"theme"`
	Team           FlexString       `json:"owner"`
	URL            string           `json:"url"`
	ReleaseItems   []RawReleaseItem `json:"releaseItems"`
	ReleaseItemIDs FlexStrings      `json:"releaseItemIds"`
}

// RawCycleRef is a nested cycle or sprint object.
type RawCycleRef struct {
	ID FlexID `json:"id"`
}

// RawReleaseItem is a fine-grained work item row.
type RawReleaseItem struct {
	ID            FlexID       `json:"id"`
	TicketID      string       `json:"ticketId"`
	Name          string       `json:"name"`
	RoadmapItemID FlexID       `json:"roadmapItemId"`
	Area          FlexString   `json:"area"`
	AreaIDs       FlexStrings  `json:"areaIds"`
	Stage         FlexString   `json:"stage"`
	Status        string       `json:"status"`
	Effort        FlexNumber   `json:"effort"`
	Assignee      *RawAssignee `json:"assignee"`
	CycleID       FlexID       `json:"cycleId"`
	Cycle         *RawCycleRef `json:"cycle"`
	Sprint        *RawCycleRef `json:"sprint"`
	Validations   FlexList     `json:"validations"`
}

// ParseRawCycleData decodes an extract. Only syntactically invalid JSON is
// an error; missing or oddly typed fields degrade to defaults.
func ParseRawCycleData(data []byte) (*RawCycleData, error) {
	var raw RawCycleData
	if err := json.Unmarshal(data, &raw); err != nil {
		// encoding/json skips mistyped fields and keeps decoding.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parsing extract: %w", err)
		}
	}
	return &raw, nil
}

// LoadRawCycleData reads and parses an extract file.
func LoadRawCycleData(path string) (*RawCycleData, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	raw, err := ParseRawCycleData(data)
	if err != nil {
		return nil, nil, err
	}
	return raw, data, nil
}
