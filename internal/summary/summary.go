// Package summary persists at most one immutable daily summary snapshot per
// calendar date. A summary captures the stats and notes at save time and is
// never recomputed from a later state - only an explicit re-save overwrites
// it, and only an explicit reset or a retention purge removes it.
package summary

import (
	"time"

	"github.com/mkovacev/fitcheck/internal/checklist"
)

type DailySummary struct {
	Date     string                            `json:"date"`
	SavedAt  time.Time                         `json:"savedAt"`
	Done     int                               `json:"done"`
	Total    int                               `json:"total"`
	Percent  int                               `json:"percent"`
	Sections map[string]checklist.SectionStats `json:"sections"`
	Notes    string                            `json:"notes"`
}
