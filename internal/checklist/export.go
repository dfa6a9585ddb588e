package checklist

import (
	"fmt"
	"strings"

	"github.com/mkovacev/fitcheck/internal/catalog"
)

// ExportText renders a deterministic plain-text dump of one day: a header
// line, each section uppercased with one line per exercise, and a trailing
// NOTES block when notes are non-empty. The format is stable - clients copy
// it to the clipboard and offer it as a file download.
func ExportText(date string, state *DailyState, cat *catalog.Catalog) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Workout Checklist — %s", date))
	lines = append(lines, "")

	for _, sec := range cat.Sections {
		lines = append(lines, strings.ToUpper(sec.Name))
		for idx, ex := range sec.Exercises {
			mark := "⬜"
			if state.Checks[catalog.ExerciseID(sec.Name, idx)] {
				mark = "✅"
			}
			hint := ""
			if ex.Hint != "" {
				hint = fmt.Sprintf(" (%s)", ex.Hint)
			}
			lines = append(lines, fmt.Sprintf("%s %s%s", mark, ex.Name, hint))
		}
		lines = append(lines, "")
	}

	if notes := strings.TrimSpace(state.Notes); notes != "" {
		lines = append(lines, "NOTES")
		lines = append(lines, notes)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// ExportFileName is the suggested download file name for one day's export.
func ExportFileName(date string) string {
	return fmt.Sprintf("workout-%s.txt", date)
}
