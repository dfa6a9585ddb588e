package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSummaryNotFound = errors.New("summary not found")

const SummaryKeyPrefix = "summary:"

func SummaryKey(date string) string {
	return SummaryKeyPrefix + date
}

type Store struct {
	kv kvstore.KeyValueStore
}

func NewStore(kv kvstore.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Save unconditionally overwrites any existing summary for the date. The
// business rule that a summary needs at least one completed exercise lives
// in the Service, not here.
func (s *Store) Save(ctx context.Context, date string, summary *DailySummary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "summary.store.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary [%s]: %w", date, err)
	}
	return s.kv.Set(ctx, SummaryKey(date), raw)
}

// Load returns the saved summary for the date, or ErrSummaryNotFound. A
// corrupt stored record is treated the same as no summary.
func (s *Store) Load(ctx context.Context, date string) (*DailySummary, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "summary.store.load")
	defer span.End()
	span.SetAttributes(attribute.String("date", date))

	raw, err := s.kv.Get(ctx, SummaryKey(date))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load summary [%s]: %w", date, err)
	}

	var summary DailySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		log.Errorf("load summary [%s], corrupt record dropped: %s", date, err)
		return nil, ErrSummaryNotFound
	}
	return &summary, nil
}

func (s *Store) Delete(ctx context.Context, date string) error {
	return s.kv.Delete(ctx, SummaryKey(date))
}
