// Package analytics derives trailing metrics - streak, weekly average,
// 30-day heatmap - from the per-date state store. Everything is computed on
// demand from storage; nothing here is cached or persisted.
package analytics

import (
	"context"
	"math"
	"time"

	"github.com/mkovacev/fitcheck/internal/catalog"
	"github.com/mkovacev/fitcheck/internal/checklist"
	"github.com/mkovacev/fitcheck/internal/telemetry/tracing"
	"github.com/mkovacev/fitcheck/pkg"
)

// streakLookbackDays caps the backward walk of the streak computation.
const streakLookbackDays = 365

// heatmapDays is the length of the trailing activity window.
const heatmapDays = 30

type Level string

const (
	// LevelBlank marks padding cells that align the heatmap to a 7-column grid.
	LevelBlank Level = "blank"
	LevelNone  Level = "none"
	LevelLow   Level = "low"
	LevelMid   Level = "mid"
	LevelHigh  Level = "high"
	LevelFull  Level = "full"
)

// LevelForPercent buckets a completion percent into a heatmap level.
func LevelForPercent(percent int) Level {
	switch {
	case percent >= 80:
		return LevelFull
	case percent >= 50:
		return LevelHigh
	case percent >= 20:
		return LevelMid
	case percent > 0:
		return LevelLow
	default:
		return LevelNone
	}
}

type HeatmapCell struct {
	// Date is empty for padding cells.
	Date    string `json:"date"`
	Percent int    `json:"percent"`
	Level   Level  `json:"level"`
}

type DayStats struct {
	Date string `json:"date"`
	checklist.Stats
}

type Overview struct {
	Streak        int           `json:"streak"`
	WeeklyAverage int           `json:"weeklyAverage"`
	ActiveDays    int           `json:"activeDays"`
	Heatmap       []HeatmapCell `json:"heatmap"`
}

// stateLoader is the slice of the state store the analyzer needs.
type stateLoader interface {
	Load(ctx context.Context, date string) *checklist.DailyState
}

type Analyzer struct {
	states  stateLoader
	catalog *catalog.Catalog

	now func() time.Time
}

func NewAnalyzer(states stateLoader, cat *catalog.Catalog) *Analyzer {
	return &Analyzer{
		states:  states,
		catalog: cat,
		now:     time.Now,
	}
}

// Streak walks backward from today counting consecutive days with at least
// one completed exercise. A day with zero completions ends the walk - today
// included, so a day not yet started reports a streak of 0 without having
// rewritten any stored history.
func (a *Analyzer) Streak(ctx context.Context) int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.streak")
	defer span.End()

	streak := 0
	day := a.now()
	for i := 0; i < streakLookbackDays; i++ {
		state := a.states.Load(ctx, pkg.FormatDay(day))
		stats := checklist.ComputeStats(state, a.catalog)
		if stats.Done == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LastDays returns stats for the trailing n calendar days including today,
// oldest first.
func (a *Analyzer) LastDays(ctx context.Context, n int) []DayStats {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.lastDays")
	defer span.End()

	result := make([]DayStats, 0, n)
	today := a.now()
	for i := n - 1; i >= 0; i-- {
		date := pkg.FormatDay(today.AddDate(0, 0, -i))
		state := a.states.Load(ctx, date)
		result = append(result, DayStats{
			Date:  date,
			Stats: checklist.ComputeStats(state, a.catalog),
		})
	}
	return result
}

// WeeklyAverage is the mean completion percent over the trailing 7 days
// including today, rounded to the nearest integer.
func (a *Analyzer) WeeklyAverage(ctx context.Context) int {
	last7 := a.LastDays(ctx, 7)
	if len(last7) == 0 {
		return 0
	}
	sum := 0
	for _, day := range last7 {
		sum += day.Percent
	}
	return int(math.Round(float64(sum) / float64(len(last7))))
}

// Heatmap returns the trailing 30 days oldest first, left-padded with blank
// cells so the first real day lands in its weekday column of a Sunday-first
// 7-column grid.
func (a *Analyzer) Heatmap(ctx context.Context) []HeatmapCell {
	last30 := a.LastDays(ctx, heatmapDays)

	var cells []HeatmapCell
	if len(last30) > 0 {
		firstDay, err := pkg.ParseDay(last30[0].Date)
		if err == nil {
			for i := 0; i < int(firstDay.Weekday()); i++ {
				cells = append(cells, HeatmapCell{Level: LevelBlank})
			}
		}
	}

	for _, day := range last30 {
		cells = append(cells, HeatmapCell{
			Date:    day.Date,
			Percent: day.Percent,
			Level:   LevelForPercent(day.Percent),
		})
	}
	return cells
}

// ActiveDays is the number of days among the trailing 30 with at least one
// completed exercise.
func (a *Analyzer) ActiveDays(ctx context.Context) int {
	active := 0
	for _, day := range a.LastDays(ctx, heatmapDays) {
		if day.Done > 0 {
			active++
		}
	}
	return active
}

// GetOverview computes all trailing metrics in one go, the shape the
// analytics tab renders.
func (a *Analyzer) GetOverview(ctx context.Context) Overview {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.overview")
	defer span.End()

	return Overview{
		Streak:        a.Streak(ctx),
		WeeklyAverage: a.WeeklyAverage(ctx),
		ActiveDays:    a.ActiveDays(ctx),
		Heatmap:       a.Heatmap(ctx),
	}
}
