package polysite

import (
	"time"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/metrics"
)

// SiteConfig holds all configuration for a polysite server or build.
type SiteConfig struct {
	Name        string // Site name (default "Polything")
	URL         string // Canonical base URL (default "https://polything.co.uk")
	Description string // Site description for RSS

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/content.db")
	ContentPath  string // YAML snapshot imported by "polysite import" (default "content.yaml")
	OutputDir    string // Static build output (default "dist")

	ServiceSlugs []string // Pages served under /services (default content.DefaultServiceSlugs)

	MetricsEnabled bool // Expose /metrics

	APIRateLimit int // Requests per minute per IP on /api (default 120, negative disables)

	CacheTTL time.Duration // Content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Polything"
	}
	if c.URL == "" {
		c.URL = "https://polything.co.uk"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.ContentPath == "" {
		c.ContentPath = "content.yaml"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if len(c.ServiceSlugs) == 0 {
		c.ServiceSlugs = content.DefaultServiceSlugs
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 120
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

// Collections returns the built-in collections with the configured service
// slugs applied.
func (c SiteConfig) Collections() []content.Collection {
	all := content.All()
	for i := range all {
		if all[i].Name == content.Services.Name && len(c.ServiceSlugs) > 0 {
			all[i] = all[i].WithFilter(c.ServiceSlugs)
		}
	}
	return all
}

// Collection returns the named collection with config applied.
func (c SiteConfig) Collection(name string) (content.Collection, bool) {
	for _, col := range c.Collections() {
		if col.Name == name {
			return col, true
		}
	}
	return content.Collection{}, false
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(a *App) {
		a.Recorder = r
	}
}
