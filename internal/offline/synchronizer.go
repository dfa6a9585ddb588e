// Package offline keeps a versioned cache of the static UI assets so the
// checklist stays usable without the upstream. Policy is cache-first with
// network fallback: cached copies are served when present, fresh downloads
// are cached as a side effect, and when both the cache and the network fail
// for a page navigation the cached root document is served instead.
package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"
	"github.com/mkovacev/fitcheck/internal/telemetry/tracing"

	"github.com/dgraph-io/ristretto/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const cacheKeyPrefix = "cache:"

// RootDocument is the navigation fallback asset.
const RootDocument = "/index.html"

// DefaultAssets is the fixed asset list cached on activation.
var DefaultAssets = []string{
	"/",
	"/index.html",
	"/style.css",
	"/app.js",
	"/exercises.json",
	"/manifest.json",
}

var ErrAssetUnavailable = errors.New("asset unavailable in cache and upstream")

// Asset is one cached resource.
type Asset struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type Synchronizer struct {
	// generation names the current cache version, e.g. "workout-v2".
	// Bumping it invalidates everything cached under previous names.
	generation string
	assets     []string
	upstream   string
	httpClient *http.Client

	// hot in-memory layer in front of the durable kv cache
	hot *ristretto.Cache[string, *Asset]
	kv  kvstore.KeyValueStore

	metrics *metrics.Manager
}

type NewSynchronizerParams struct {
	Generation string
	Assets     []string
	Upstream   string
	HTTPClient *http.Client
	KV         kvstore.KeyValueStore
	Metrics    *metrics.Manager
}

func NewSynchronizer(params NewSynchronizerParams) (*Synchronizer, error) {
	if params.Generation == "" {
		return nil, errors.New("cache generation name empty")
	}

	hot, err := ristretto.NewCache(&ristretto.Config[string, *Asset]{
		NumCounters: 1e4,
		MaxCost:     1 << 26, // ~64M
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	assets := params.Assets
	if len(assets) == 0 {
		assets = DefaultAssets
	}

	return &Synchronizer{
		generation: params.Generation,
		assets:     assets,
		upstream:   strings.TrimSuffix(params.Upstream, "/"),
		httpClient: params.HTTPClient,
		hot:        hot,
		kv:         params.KV,
		metrics:    params.Metrics,
	}, nil
}

func (s *Synchronizer) cacheKey(path string) string {
	return cacheKeyPrefix + s.generation + ":" + path
}

// Activate drops every cached entry belonging to another generation and
// prewarms the current one with the fixed asset list. Prewarm failures are
// logged only - offline support is best-effort.
func (s *Synchronizer) Activate(ctx context.Context) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "offline.activate")
	defer span.End()
	span.SetAttributes(attribute.String("generation", s.generation))

	keys, err := s.kv.ListKeys(ctx, cacheKeyPrefix)
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}

	currentPrefix := cacheKeyPrefix + s.generation + ":"
	dropped := 0
	for _, key := range keys {
		if strings.HasPrefix(key, currentPrefix) {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			log.Errorf("drop stale cache entry [%s]: %s", key, err)
			continue
		}
		dropped++
	}
	if dropped > 0 {
		log.Printf("offline cache [%s]: %d stale entries dropped", s.generation, dropped)
	}

	for _, path := range s.assets {
		if _, err := s.Fetch(ctx, path, false); err != nil {
			log.Warnf("prewarm asset [%s]: %s", path, err)
		}
	}
	return nil
}

// Fetch returns the asset for the given path, cache first. On a cache miss
// the upstream is consulted and a successful response is copied into the
// cache without blocking the return path. When everything fails and the
// request is navigational, the cached root document is served instead.
func (s *Synchronizer) Fetch(ctx context.Context, path string, navigational bool) (*Asset, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "offline.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	if asset, ok := s.lookupCache(ctx, path); ok {
		s.metrics.CounterAssetCacheHits.Inc()
		return asset, nil
	}
	s.metrics.CounterAssetCacheMisses.Inc()

	asset, err := s.fetchUpstream(ctx, path)
	if err == nil {
		// populate the cache as a fire-and-forget side effect; the
		// response does not wait for it
		go s.storeCache(asset)
		return asset, nil
	}
	log.Warnf("fetch asset [%s] from upstream: %s", path, err)

	if navigational && path != RootDocument {
		if fallback, ok := s.lookupCache(ctx, RootDocument); ok {
			return fallback, nil
		}
	}
	return nil, ErrAssetUnavailable
}

func (s *Synchronizer) lookupCache(ctx context.Context, path string) (*Asset, bool) {
	if asset, ok := s.hot.Get(s.cacheKey(path)); ok {
		return asset, true
	}

	raw, err := s.kv.Get(ctx, s.cacheKey(path))
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("cache lookup [%s]: %s", path, err)
		}
		return nil, false
	}

	var asset Asset
	if err := json.Unmarshal(raw, &asset); err != nil {
		log.Errorf("cache lookup [%s], corrupt entry dropped: %s", path, err)
		return nil, false
	}

	s.hot.Set(s.cacheKey(path), &asset, int64(len(asset.Body)))
	return &asset, true
}

func (s *Synchronizer) fetchUpstream(ctx context.Context, path string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstream+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream get: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	return &Asset{
		Path:        path,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// storeCache writes an asset copy to both cache tiers. It runs detached from
// the request that produced the asset; the kv store gives last-write-wins
// per key, so racing writers need no coordination. Errors are swallowed.
func (s *Synchronizer) storeCache(asset *Asset) {
	raw, err := json.Marshal(asset)
	if err != nil {
		log.Errorf("marshal cache entry [%s]: %s", asset.Path, err)
		return
	}
	if err := s.kv.Set(context.Background(), s.cacheKey(asset.Path), raw); err != nil {
		log.Errorf("store cache entry [%s]: %s", asset.Path, err)
		return
	}
	s.hot.Set(s.cacheKey(asset.Path), asset, int64(len(asset.Body)))
}

// Wait blocks until pending hot-cache writes are visible. Tests use it.
func (s *Synchronizer) Wait() {
	s.hot.Wait()
}

// Close stops the hot cache goroutines. The durable kv tier is owned by the
// caller and stays open.
func (s *Synchronizer) Close() {
	s.hot.Close()
}
