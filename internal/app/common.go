package app

import "github.com/alexanderramin/cycleboard/internal/domain"

// ExtractCounts sizes a nested extract.
type ExtractCounts struct {
	Initiatives  int
	RoadmapItems int
	ReleaseItems int
}

// CountsOf measures data.
func CountsOf(data *domain.NestedCycleData) ExtractCounts {
	ini, rm, rel := data.Counts()
	return ExtractCounts{Initiatives: ini, RoadmapItems: rm, ReleaseItems: rel}
}

// FilterOverride sets one filter key for a single request.
type FilterOverride struct {
	Key    string
	Values []string
}
