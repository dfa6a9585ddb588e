// Package session tracks which date the checklist is currently pointed at.
// The cursor is persisted so it survives client reloads, but a new service
// process is a new session: the first access after startup snaps the cursor
// back to today.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/pkg"

	log "github.com/sirupsen/logrus"
)

const activeDateKey = "activeDate"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

type Tracker struct {
	kv kvstore.KeyValueStore

	// started is the in-process session marker; it is deliberately not
	// persisted, its whole point is to vanish with the process
	mu      sync.Mutex
	started bool

	now func() time.Time
}

func NewTracker(kv kvstore.KeyValueStore) *Tracker {
	return &Tracker{
		kv:  kv,
		now: time.Now,
	}
}

// ActiveDate returns the current cursor. The first call of a session resets
// it to today; after that the stored cursor wins, falling back to today when
// the stored value is missing or mangled.
func (t *Tracker) ActiveDate(ctx context.Context) string {
	t.mu.Lock()
	firstAccess := !t.started
	t.started = true
	t.mu.Unlock()

	today := pkg.FormatDay(t.now())

	if firstAccess {
		if err := t.kv.Set(ctx, activeDateKey, []byte(today)); err != nil {
			log.Errorf("reset active date to today: %s", err)
		}
		return today
	}

	raw, err := t.kv.Get(ctx, activeDateKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("get active date: %s", err)
		}
		return today
	}

	date := string(raw)
	if !pkg.IsValidDay(date) {
		return today
	}
	return date
}

// SetActiveDate moves the cursor.
func (t *Tracker) SetActiveDate(ctx context.Context, date string) error {
	if !pkg.IsValidDay(date) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}

	t.mu.Lock()
	t.started = true
	t.mu.Unlock()

	return t.kv.Set(ctx, activeDateKey, []byte(date))
}
