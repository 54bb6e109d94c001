package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/polything/polysite"
	"github.com/polything/polysite/content"
	"github.com/polything/polysite/logger"
	"github.com/polything/polysite/metrics"
)

func (g *Globals) siteConfig() polysite.SiteConfig {
	cfg := polysite.SiteConfig{
		Name:         g.Name,
		URL:          g.URL,
		Description:  g.Description,
		DatabasePath: g.Database,
		ServiceSlugs: g.Services,
	}
	return cfg.WithDefaults()
}

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Addr     string        `short:"a" help:"Listen address." env:"POLYSITE_ADDR"`
	Static   string        `help:"Static asset directory served under /public." default:"public"`
	Metrics  bool          `help:"Expose Prometheus metrics on /metrics." env:"POLYSITE_METRICS"`
	CacheTTL time.Duration `name:"cache-ttl" help:"How long content stays cached." env:"POLYSITE_CACHE_TTL"`
}

func (c *ServeCmd) Run(ctx context.Context, g *Globals) error {
	cfg := g.siteConfig()
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.CacheTTL > 0 {
		cfg.CacheTTL = c.CacheTTL
	}
	cfg.MetricsEnabled = c.Metrics

	app := polysite.New(cfg, polysite.WithStaticDir(c.Static))
	defer app.Close()
	return app.Run(ctx)
}

// BuildCmd renders the static site.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory." env:"POLYSITE_OUTPUT"`
	From   string `help:"Build from a YAML snapshot instead of the database." type:"existingfile"`
	Strict bool   `help:"Fail when a collection produces no routes."`

	MetricsFile string `name:"metrics-file" help:"Write build metrics in the Prometheus text format." env:"POLYSITE_METRICS_FILE"`
}

func (c *BuildCmd) Run(ctx context.Context, g *Globals) error {
	cfg := g.siteConfig()
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}

	snap, err := loadSnapshot(cfg, c.From)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	reg := prom.NewRegistry()
	if c.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(reg)
	}
	report, err := polysite.Build(ctx, cfg, snap, rec)
	if err != nil {
		return err
	}
	if c.MetricsFile != "" {
		if err := prom.WriteToTextfile(c.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	for name, paths := range report.Routes {
		logger.Log.Debug("collection built", "collection", name, "routes", len(paths))
	}
	if c.Strict && len(report.Warnings) > 0 {
		return fmt.Errorf("build produced %d warnings", len(report.Warnings))
	}
	return nil
}

// SlugsCmd prints the route params of one collection.
type SlugsCmd struct {
	Collection string `arg:"" enum:"pages,services,posts,projects" help:"Collection name (${enum})."`
	From       string `help:"Read a YAML snapshot instead of the database." type:"existingfile"`
}

func (c *SlugsCmd) Run(g *Globals) error {
	cfg := g.siteConfig()
	col, ok := cfg.Collection(c.Collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", c.Collection)
	}
	snap, err := loadSnapshot(cfg, c.From)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(content.EnumerateSlugs(snap.ByKind(col.Kind), col.Filter))
}

// ImportCmd loads a YAML snapshot into the database, replacing what is there.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML snapshot to import."`
}

func (c *ImportCmd) Run(g *Globals) error {
	snap, err := readSnapshot(c.File)
	if err != nil {
		return err
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot %s: %w", c.File, err)
	}

	cfg := g.siteConfig()
	store, err := polysite.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveSnapshot(snap); err != nil {
		return err
	}
	logger.Log.Info("snapshot imported",
		"file", c.File,
		"pages", len(snap.Pages),
		"posts", len(snap.Posts),
		"projects", len(snap.Projects),
	)
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("polysite %s\n", version)
	return nil
}

func readSnapshot(path string) (content.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return content.Snapshot{}, err
	}
	defer f.Close()
	return content.DecodeSnapshot(f)
}

// loadSnapshot reads from a YAML file when one is given, else the database.
func loadSnapshot(cfg polysite.SiteConfig, from string) (content.Snapshot, error) {
	if from != "" {
		return readSnapshot(from)
	}
	store, err := polysite.NewStore(cfg.DatabasePath)
	if err != nil {
		return content.Snapshot{}, err
	}
	defer store.Close()
	return store.Snapshot()
}
