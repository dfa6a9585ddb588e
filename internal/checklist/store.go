package checklist

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

const StateKeyPrefix = "state:"

func StateKey(date string) string {
	return StateKeyPrefix + date
}

// StateStore persists one DailyState per calendar date, key "state:{date}".
// Writes are full overwrites, no partial merges.
type StateStore struct {
	kv kvstore.KeyValueStore
}

func NewStateStore(kv kvstore.KeyValueStore) *StateStore {
	return &StateStore{kv: kv}
}

// Load returns the state for the given date. It fails soft: a missing entry
// or an unparsable stored record yields a fresh empty state, never an error.
func (s *StateStore) Load(ctx context.Context, date string) *DailyState {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checklist.state.load")
	defer span.End()
	span.SetAttributes(attribute.String("date", date))

	raw, err := s.kv.Get(ctx, StateKey(date))
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("load state [%s]: %s", date, err)
		}
		return NewDailyState()
	}

	var state DailyState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Errorf("load state [%s], corrupt record dropped: %s", date, err)
		return NewDailyState()
	}
	if state.Checks == nil {
		state.Checks = make(map[string]bool)
	}
	return &state
}

// Save overwrites the entry for the given date. Each call is an immediate
// durable write - there is no batching or debounce.
func (s *StateStore) Save(ctx context.Context, date string, state *DailyState) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checklist.state.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state [%s]: %w", date, err)
	}
	return s.kv.Set(ctx, StateKey(date), raw)
}

// Reset clears the state for the given date: empty checks, empty notes. The
// entry stays in the store, it is not deleted.
func (s *StateStore) Reset(ctx context.Context, date string) error {
	return s.Save(ctx, date, NewDailyState())
}
