package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/time/rate"

	"github.com/formbricks/explorer/internal/api"
	"github.com/formbricks/explorer/internal/api/handlers"
	"github.com/formbricks/explorer/internal/api/middleware"
	"github.com/formbricks/explorer/internal/config"
	"github.com/formbricks/explorer/internal/corpus"
	"github.com/formbricks/explorer/internal/embeddings"
	"github.com/formbricks/explorer/internal/observability"
	"github.com/formbricks/explorer/internal/service"
)

const serviceName = "interview-explorer"

// App holds all server dependencies and coordinates startup and shutdown.
type App struct {
	cfg            *config.Config
	server         *http.Server
	meterProvider  *observability.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// setupMetrics creates the meter provider and explorer metrics when METRICS_ENABLED is true.
func setupMetrics(ctx context.Context, cfg *config.Config) (*observability.MeterProvider, *observability.Metrics, error) {
	if !cfg.MetricsEnabled {
		slog.Warn("metrics not enabled (METRICS_ENABLED=false)")

		return nil, nil, nil
	}

	mp, err := observability.NewMeterProvider(ctx, observability.MeterProviderConfig{
		ServiceName:  serviceName,
		OTLPExporter: cfg.OtelMetricsExporter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create meter provider: %w", err)
	}

	metrics, err := observability.NewMetrics(mp.Meter)
	if err != nil {
		if err2 := mp.Shutdown(context.Background()); err2 != nil {
			slog.Error("shutdown meter provider after metrics error", "error", err2)
		}

		return nil, nil, fmt.Errorf("create metrics: %w", err)
	}

	return mp, metrics, nil
}

// NewApp builds and wires all components around a loaded corpus. It does not start the
// HTTP server; call Run to start and block until shutdown or failure.
func NewApp(ctx context.Context, cfg *config.Config, store *corpus.Store) (*App, error) {
	meterProvider, metrics, err := setupMetrics(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var tracerProvider *sdktrace.TracerProvider

	if cfg.OtelTracesExporter == "" {
		slog.Info("tracing not enabled (OTEL_TRACES_EXPORTER empty or unset)")
	} else {
		tracerProvider, err = observability.NewTracerProvider(ctx, cfg.OtelTracesExporter, serviceName)
		if err != nil {
			if err2 := meterProvider.Shutdown(context.Background()); err2 != nil {
				slog.Error("shutdown meter provider after tracer provider error", "error", err2)
			}

			return nil, fmt.Errorf("create tracer provider: %w", err)
		}
	}

	if tracerProvider != nil {
		otel.SetTracerProvider(tracerProvider)
	}

	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider.Provider)
	}

	embeddingClient, err := embeddings.NewClient(ctx, cfg, store.Dimension())
	if err != nil {
		if err2 := shutdownObservability(context.Background(), tracerProvider, meterProvider); err2 != nil {
			slog.Error("shutdown observability after embedding client error", "error", err2)
		}

		return nil, err
	}

	searchParams := service.SearchServiceParams{
		Corpus:          store,
		EmbeddingClient: embeddingClient,
		Provider:        cfg.EmbeddingProvider,
		Model:           cfg.EmbeddingModel,
		Timeout:         cfg.EmbeddingTimeout,
		Logger:          slog.Default(),
	}

	if cfg.EmbeddingRateLimit > 0 {
		searchParams.Limiter = rate.NewLimiter(rate.Limit(cfg.EmbeddingRateLimit), 1)
	}

	if cfg.SearchQueryCacheSize > 0 {
		queryCache, err := service.NewQueryCache(cfg.SearchQueryCacheSize)
		if err != nil {
			return nil, err
		}

		searchParams.QueryCache = queryCache
	}

	if metrics != nil {
		searchParams.CacheMetrics = metrics.Cache
		searchParams.EmbeddingMetrics = metrics.Embeddings
		searchParams.SearchMetrics = metrics.Search
	}

	routerParams := api.RouterParams{
		Health:      handlers.NewHealthHandler(store),
		Transcripts: handlers.NewTranscriptsHandler(service.NewTranscriptsService(store)),
		Search: handlers.NewSearchHandler(service.NewSearchService(searchParams), handlers.PageLimits{
			Default: cfg.SearchDefaultLimit,
			Max:     cfg.SearchMaxLimit,
		}),
		Summary:      handlers.NewSummaryHandler(service.NewSummaryService(store)),
		Metrics:      metrics,
		MaxBodyBytes: cfg.MaxRequestBodyBytes,
		StaticDir:    cfg.StaticDir,
		Logger:       slog.Default(),
	}

	if meterProvider != nil {
		routerParams.MetricsHandler = meterProvider.Handler
	}

	slog.Info("search ready",
		"provider", cfg.EmbeddingProvider,
		"model", cfg.EmbeddingModel,
		"corpus_model", store.Model(),
		"dimension", store.Dimension(),
		"query_cache_size", cfg.SearchQueryCacheSize,
		"rate_limit", cfg.EmbeddingRateLimit,
	)

	return &App{
		cfg:            cfg,
		server:         newHTTPServer(cfg, api.NewRouter(routerParams), meterProvider, tracerProvider),
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
	}, nil
}

// newHTTPServer wraps the router for tracing and request ids.
// Handler chain: RequestID -> otelhttp(router) so access logs get trace_id/span_id from context.
func newHTTPServer(
	cfg *config.Config,
	router http.Handler,
	meterProvider *observability.MeterProvider,
	tracerProvider *sdktrace.TracerProvider,
) *http.Server {
	otelOpts := []otelhttp.Option{
		// Skip tracing and HTTP metrics for health checks and scrapes to reduce noise.
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && r.URL.Path != "/metrics"
		}),
	}
	if meterProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithMeterProvider(meterProvider.Provider))
	}

	if tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(tracerProvider))
	}

	handler := otelhttp.NewHandler(router, serviceName, otelOpts...)
	handler = middleware.RequestID(handler)

	const (
		readTimeout  = 15 * time.Second
		writeTimeout = 30 * time.Second
		idleTimeout  = 60 * time.Second
	)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the HTTP server, then blocks until ctx is cancelled (e.g. signal) or the server fails.
// Caller should then call Shutdown.
func (a *App) Run(ctx context.Context) error {
	runErr := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "port", a.cfg.Port)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr <- fmt.Errorf("server: %w", err)
		}
	}()

	select {
	case err := <-runErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

// shutdownObservability shuts down tracer and meter providers. Logs secondary errors, returns the first.
func shutdownObservability(ctx context.Context, tracer *sdktrace.TracerProvider, meter *observability.MeterProvider) error {
	var first error

	if err := observability.ShutdownTracerProvider(ctx, tracer); err != nil {
		first = err
	}

	if err := meter.Shutdown(ctx); err != nil {
		if first == nil {
			first = err
		} else {
			slog.Error("shutdown meter provider", "error", err)
		}
	}

	return first
}

// Shutdown stops the server, then flushes observability. Call after Run returns.
func (a *App) Shutdown(ctx context.Context) (err error) {
	defer func() {
		obsErr := shutdownObservability(ctx, a.tracerProvider, a.meterProvider)
		if err == nil {
			err = obsErr
		} else if obsErr != nil {
			slog.Error("shutdown observability", "error", obsErr)
		}
	}()

	if err = a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
