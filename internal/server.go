package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mkovacev/fitcheck/internal/analytics"
	"github.com/mkovacev/fitcheck/internal/catalog"
	"github.com/mkovacev/fitcheck/internal/checklist"
	"github.com/mkovacev/fitcheck/internal/config"
	"github.com/mkovacev/fitcheck/internal/kvstore"
	"github.com/mkovacev/fitcheck/internal/middleware"
	"github.com/mkovacev/fitcheck/internal/offline"
	"github.com/mkovacev/fitcheck/internal/retention"
	"github.com/mkovacev/fitcheck/internal/session"
	"github.com/mkovacev/fitcheck/internal/summary"
	"github.com/mkovacev/fitcheck/internal/telemetry/metrics"
	"github.com/mkovacev/fitcheck/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	kv      kvstore.KeyValueStore
	catalog *catalog.Catalog

	stateStore   *checklist.StateStore
	summaryStore *summary.Store
	summaries    *summary.Service
	analyzer     *analytics.Analyzer
	retention    *retention.Manager
	offlineSync  *offline.Synchronizer
	sessions     *session.Tracker

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config        *config.Config
	RedisPassword string
	VersionInfo   string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	kv, err := newKeyValueStore(ctx, params.Config, params.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("new key value store: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitcheck", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	exerciseCatalog := catalog.Load(params.Config.CatalogPath)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	offlineSync, err := offline.NewSynchronizer(offline.NewSynchronizerParams{
		Generation: params.Config.CacheGeneration,
		Assets:     params.Config.Assets,
		Upstream:   params.Config.AssetsUpstream,
		HTTPClient: tracedHttpClient,
		KV:         kv,
		Metrics:    metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new offline synchronizer: %w", err)
	}

	stateStore := checklist.NewStateStore(kv)
	summaryStore := summary.NewStore(kv)

	s := &Server{
		config:       params.Config,
		kv:           kv,
		catalog:      exerciseCatalog,
		versionInfo:  params.VersionInfo,
		stateStore:   stateStore,
		summaryStore: summaryStore,
		summaries:    summary.NewService(stateStore, summaryStore, exerciseCatalog),
		analyzer:     analytics.NewAnalyzer(stateStore, exerciseCatalog),
		retention:    retention.NewManager(kv, metricsManager),
		offlineSync:  offlineSync,
		sessions:     session.NewTracker(kv),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	// version bump cleanup + asset prewarm, best-effort
	go func() {
		if err := s.offlineSync.Activate(ctx); err != nil {
			log.Errorf("activate offline cache: %s", err)
		}
	}()

	go s.retention.RunPeriodic(
		ctx,
		time.Duration(params.Config.RetentionIntervalHours)*time.Hour,
		params.Config.RetentionDays,
	)

	return s, nil
}

func newKeyValueStore(ctx context.Context, cfg *config.Config, redisPassword string) (kvstore.KeyValueStore, error) {
	switch cfg.KVBackend {
	case "badger", "":
		return kvstore.NewBadgerStore(kvstore.BadgerStoreParams{
			Dir: cfg.DataDir,
		})
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: redisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		return kvstore.NewRedisStore(rdb), nil
	case "memory":
		log.Warnln("using in-memory storage, nothing will be persisted")
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown kv backend: %s", cfg.KVBackend)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	checklistHandler := checklist.NewHandler(
		s.stateStore,
		s.catalog,
		s.summaryStore,
		s.metricsManager,
	)
	checklistHandler.SetupRoutes(r)

	summaryHandler := summary.NewHandler(s.summaries, s.summaryStore, s.metricsManager)
	summaryHandler.SetupRoutes(r)

	analyticsHandler := analytics.NewHandler(s.analyzer)
	analyticsHandler.SetupRoutes(r)

	sessionHandler := session.NewHandler(s.sessions)
	sessionHandler.SetupRoutes(r)

	retentionHandler := retention.NewHandler(s.retention, s.config.RetentionDays)
	retentionHandler.SetupRoutes(r)

	offlineHandler := offline.NewHandler(s.offlineSync)
	offlineHandler.SetupRoutes(r)

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteResponse(w, "", s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.offlineSync.Close()

	if s.kv != nil {
		log.Debugln("closing kv store ...")
		if err := s.kv.Close(); err != nil {
			log.Errorf("failed to close kv store: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
