package summary

import (
	"context"
	"errors"
	"time"

	"github.com/mkovacev/fitcheck/internal/catalog"
	"github.com/mkovacev/fitcheck/internal/checklist"
	"github.com/mkovacev/fitcheck/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrNothingDone rejects saving a summary for a day with zero completed
// exercises. This is the one validation rule in the whole system.
var ErrNothingDone = errors.New("no completed exercises for this day")

type Service struct {
	states    *checklist.StateStore
	summaries *Store
	catalog   *catalog.Catalog

	now func() time.Time
}

func NewService(
	states *checklist.StateStore,
	summaries *Store,
	cat *catalog.Catalog,
) *Service {
	return &Service{
		states:    states,
		summaries: summaries,
		catalog:   cat,
		now:       time.Now,
	}
}

// SaveForDay snapshots the current state of the given day into a summary.
// The snapshot reflects the state at save time; later edits to the day do
// not touch it. Re-saving overwrites the previous snapshot.
func (s *Service) SaveForDay(ctx context.Context, date string) (_ *DailySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "summary.service.saveForDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	state := s.states.Load(ctx, date)
	stats := checklist.ComputeStats(state, s.catalog)

	if stats.Done == 0 {
		return nil, ErrNothingDone
	}

	daySummary := &DailySummary{
		Date:     date,
		SavedAt:  s.now().UTC(),
		Done:     stats.Done,
		Total:    stats.Total,
		Percent:  stats.Percent,
		Sections: stats.Sections,
		Notes:    state.Notes,
	}

	if err := s.summaries.Save(ctx, date, daySummary); err != nil {
		return nil, err
	}
	return daySummary, nil
}
