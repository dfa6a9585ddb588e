package checklist

import (
	"math"

	"github.com/mkovacev/fitcheck/internal/catalog"
)

type SectionStats struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Stats is derived from a DailyState and the catalog; it is never persisted
// on its own (the summary store snapshots it at save time).
type Stats struct {
	Done     int                     `json:"done"`
	Total    int                     `json:"total"`
	Percent  int                     `json:"percent"`
	Sections map[string]SectionStats `json:"sections"`
}

// ComputeStats counts checked exercises per catalog section. Checks that no
// longer map to a catalog entry are ignored, so Done never exceeds Total.
// An empty catalog yields Total 0, Percent 0.
func ComputeStats(state *DailyState, cat *catalog.Catalog) Stats {
	sections := make(map[string]SectionStats, len(cat.Sections))
	var doneAll, totalAll int

	for _, sec := range cat.Sections {
		done := 0
		for idx := range sec.Exercises {
			if state.Checks[catalog.ExerciseID(sec.Name, idx)] {
				done++
			}
		}
		sections[sec.Name] = SectionStats{Done: done, Total: len(sec.Exercises)}
		doneAll += done
		totalAll += len(sec.Exercises)
	}

	percent := 0
	if totalAll > 0 {
		percent = int(math.Round(float64(doneAll) / float64(totalAll) * 100))
	}

	return Stats{
		Done:     doneAll,
		Total:    totalAll,
		Percent:  percent,
		Sections: sections,
	}
}
