package importer

import (
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// Diagnose reports data-quality problems in an extract. None of them stop
// ingestion; Nest degrades each one to a documented default.
func Diagnose(raw *RawCycleData) []string {
	if raw == nil {
		return nil
	}
	var warnings []string

	for i, c := range raw.Cycles {
		prefix := fmt.Sprintf("cycles[%d]", i)
		if c.ID == "" {
			warnings = append(warnings, prefix+".id is missing")
		}
		warnings = append(warnings, checkDate(prefix+".startDate", c.StartDate, true)...)
		if c.EndDate == "" && c.Delivery() == "" {
			warnings = append(warnings, prefix+": no endDate or delivery date; cycle metadata will be empty")
		} else {
			warnings = append(warnings, checkDate(prefix+".endDate", c.EndDate, false)...)
			warnings = append(warnings, checkDate(prefix+".delivery", c.Delivery(), false)...)
		}
	}

	knownIDs := make(map[string]bool, len(raw.ReleaseItems))
	for i := range raw.ReleaseItems {
		ri := &raw.ReleaseItems[i]
		knownIDs[string(ri.ID)] = true
		warnings = append(warnings, checkReleaseItem(fmt.Sprintf("releaseItems[%d]", i), ri)...)
	}

	seen := make(map[string]bool, len(raw.RoadmapItems))
	for i := range raw.RoadmapItems {
		rr := &raw.RoadmapItems[i]
		prefix := fmt.Sprintf("roadmapItems[%d]", i)
		id := string(rr.ID)
		switch {
		case id == "":
			warnings = append(warnings, prefix+".id is missing")
		case seen[id]:
			warnings = append(warnings, fmt.Sprintf("%s.id: duplicate id %q", prefix, id))
		default:
			seen[id] = true
		}
		if rr.InitiativeID == "" {
			warnings = append(warnings, fmt.Sprintf("%s: no initiativeId; grouped under %q", prefix, domain.UnassignedInitiativeName))
		}
		for _, ref := range rr.ReleaseItemIDs {
			if !knownIDs[ref] {
				warnings = append(warnings, fmt.Sprintf("%s.releaseItemIds: %q not found in releaseItems", prefix, ref))
			}
		}
		for j := range rr.ReleaseItems {
			warnings = append(warnings, checkReleaseItem(fmt.Sprintf("%s.releaseItems[%d]", prefix, j), &rr.ReleaseItems[j])...)
		}
	}

	return warnings
}

func checkReleaseItem(prefix string, ri *RawReleaseItem) []string {
	var warnings []string
	if ri.Effort.Raw != "" && !ri.Effort.Valid {
		warnings = append(warnings, fmt.Sprintf("%s.effort: non-numeric value %s counts as 0 weeks", prefix, ri.Effort.Raw))
	} else if ri.Effort.Valid && ri.Effort.Value < 0 {
		warnings = append(warnings, fmt.Sprintf("%s.effort: negative value %s counts as 0 weeks", prefix, ri.Effort.Raw))
	}
	if ri.Status != "" && domain.ParseReleaseStatus(ri.Status) == domain.StatusUnknown {
		warnings = append(warnings, fmt.Sprintf("%s.status: unrecognized value %q", prefix, ri.Status))
	}
	if ri.Validations.Coerced {
		warnings = append(warnings, prefix+".validations: not an array; treated as empty")
	}
	return warnings
}

func checkDate(field, value string, required bool) []string {
	if value == "" {
		if required {
			return []string{field + " is missing"}
		}
		return nil
	}
	if parseISODate(value) == nil {
		return []string{fmt.Sprintf("%s: invalid date %q", field, value)}
	}
	return nil
}
