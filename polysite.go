// Package polysite serves and builds the Polything marketing site.
// It resolves pages, posts and projects from a stored content snapshot and
// derives each route's SEO metadata and JSON-LD structured data.
//
// Content arrives as a YAML snapshot imported into SQLite; polysite never
// parses markdown or authors content itself.
package polysite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/polything/polysite/logger"
	"github.com/polything/polysite/metrics"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// App is the central polysite application. It wires together the store,
// cache, handlers, middleware and metrics.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *ContentCache
	Recorder metrics.Recorder

	registry     *prom.Registry
	apiLimiter   *RateLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store and registers metrics, middleware and routes. It is
// separate from Start so tests can drive a.Echo directly.
func (a *App) Init() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("polysite: init store: %w", err)
	}
	a.Store = store

	if a.Recorder == nil && a.Config.MetricsEnabled {
		a.registry = prom.NewRegistry()
		a.Recorder = metrics.NewPrometheusRecorder(a.registry)
	}
	if a.Recorder == nil {
		a.Recorder = metrics.NoopRecorder{}
	}

	a.Cache = NewContentCache(a.Store, a.Config.CacheTTL, a.Recorder)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server stops.
func (a *App) Start() error {
	return a.Run(context.Background())
}

// Run initializes the app and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("starting server", "addr", a.Config.Addr)
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Log.Info("shutting down", "timeout", shutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("polysite: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	if a.registry != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(a.registry)))
	}

	api := e.Group("/api")
	if a.Config.APIRateLimit > 0 {
		a.apiLimiter = NewRateLimiter(a.Config.APIRateLimit, time.Minute)
		api.Use(a.apiLimiter.Middleware)
	}
	api.GET("/seo/:collection/:slug", a.handleSEO)
	api.GET("/params/:collection", a.handleParams)

	e.GET("/", a.handleHome)
	for _, col := range a.Config.Collections() {
		e.GET(col.Path(":slug"), a.handleEntry(col))
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
