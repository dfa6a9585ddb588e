// Package retention prunes old per-date entries from the state and summary
// namespaces. The store grows one key per visited day, unbounded, so a purge
// with a configured window runs periodically and can be triggered manually.
package retention

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"
	"github.com/mkovacev/fitcheck/internal/telemetry/tracing"
	"github.com/mkovacev/fitcheck/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// dayKeyRegex extracts the embedded date from purgeable keys. Keys that do
// not match are left alone - activeDate, cache entries, anything else.
var dayKeyRegex = regexp.MustCompile(`^(?:state|summary):(\d{4}-\d{2}-\d{2})$`)

var purgePrefixes = []string{"state:", "summary:"}

type Manager struct {
	kv      kvstore.KeyValueStore
	metrics *metrics.Manager

	now func() time.Time
}

func NewManager(kv kvstore.KeyValueStore, metrics *metrics.Manager) *Manager {
	return &Manager{
		kv:      kv,
		metrics: metrics,
		now:     time.Now,
	}
}

// PurgeOlderThan removes every state and summary entry whose embedded date is
// strictly earlier than today minus the given number of days. It returns the
// number of removed keys. Malformed keys are skipped, not counted.
func (m *Manager) PurgeOlderThan(ctx context.Context, days int) (removed int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "retention.purge")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("days", days))

	cutoff := pkg.FormatDay(m.now().AddDate(0, 0, -days))

	for _, prefix := range purgePrefixes {
		keys, err := m.kv.ListKeys(ctx, prefix)
		if err != nil {
			return removed, fmt.Errorf("list keys [%s]: %w", prefix, err)
		}

		for _, key := range keys {
			match := dayKeyRegex.FindStringSubmatch(key)
			if match == nil {
				continue
			}
			// ISO dates compare correctly as strings
			if match[1] >= cutoff {
				continue
			}
			if err := m.kv.Delete(ctx, key); err != nil {
				return removed, fmt.Errorf("delete key [%s]: %w", key, err)
			}
			removed++
		}
	}

	m.metrics.CounterEntriesPurged.Add(float64(removed))
	log.Debugf("retention purge done, cutoff [%s]: %d entries removed", cutoff, removed)
	return removed, nil
}

type StorageInfo struct {
	Entries   int `json:"entries"`
	SizeBytes int `json:"sizeBytes"`
}

// GetStorageInfo reports how many checklist entries are stored and how many
// bytes their values take.
func (m *Manager) GetStorageInfo(ctx context.Context) (*StorageInfo, error) {
	info := &StorageInfo{}
	for _, prefix := range purgePrefixes {
		keys, err := m.kv.ListKeys(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("list keys [%s]: %w", prefix, err)
		}
		for _, key := range keys {
			value, err := m.kv.Get(ctx, key)
			if err != nil {
				continue
			}
			info.Entries++
			info.SizeBytes += len(value)
		}
	}
	return info, nil
}

// RunPeriodic purges with the given window on every tick until the context
// is canceled. Failures are logged and the loop keeps going.
func (m *Manager) RunPeriodic(ctx context.Context, interval time.Duration, days int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("retention loop stopped")
			return
		case <-ticker.C:
			removed, err := m.PurgeOlderThan(ctx, days)
			if err != nil {
				log.Errorf("periodic retention purge: %s", err)
				continue
			}
			if removed > 0 {
				log.Printf("periodic retention purge: %d entries removed", removed)
			}
		}
	}
}
