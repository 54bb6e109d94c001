package polysite

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/head"
	"github.com/polything/polysite/logger"
	"github.com/polything/polysite/metrics"
	"github.com/polything/polysite/seo"
)

// buildConcurrency bounds how many routes render at once.
const buildConcurrency = 8

// Report summarizes a static build.
type Report struct {
	// Routes maps each collection name to the paths it produced, sorted.
	Routes   map[string][]string
	Warnings []string
	Duration time.Duration
}

// Total returns the number of routes written.
func (r Report) Total() int {
	n := 0
	for _, paths := range r.Routes {
		n += len(paths)
	}
	return n
}

type buildRoute struct {
	col   content.Collection
	entry *content.Entry
	path  string
}

// Build renders every enumerated route of snap into cfg.OutputDir. Each route
// gets an index.html and a seo.json; the sitemap, feed, robots.txt and
// 404.html are written once all routes succeed. A collection that yields no
// routes is reported as a warning, not an error.
func Build(ctx context.Context, cfg SiteConfig, snap content.Snapshot, rec metrics.Recorder) (Report, error) {
	cfg.setDefaults()
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	start := time.Now()
	report := Report{Routes: make(map[string][]string)}

	var routes []buildRoute
	seen := make(map[string]struct{})
	for _, col := range cfg.Collections() {
		entries := snap.ByKind(col.Kind)
		params := content.EnumerateSlugs(entries, col.Filter)
		if len(params) == 0 {
			msg := fmt.Sprintf("collection %q produced no routes", col.Name)
			report.Warnings = append(report.Warnings, msg)
			logger.Log.Warn("empty collection", "collection", col.Name)
		}
		for _, p := range params {
			if err := content.CheckSlug(p.Slug); err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s %q skipped: %v", col.Name, p.Slug, err))
				logger.Log.Warn("unsafe slug skipped", "collection", col.Name, "slug", p.Slug, "error", err)
				continue
			}
			e, ok := content.Resolve(entries, p.Slug)
			if !ok {
				continue
			}
			path := col.Path(p.Slug)
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			routes = append(routes, buildRoute{col: col, entry: e, path: path})
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(buildConcurrency)
	for _, r := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeRoute(gctx, cfg, r); err != nil {
				return fmt.Errorf("%s %q: %w", r.col.Name, r.entry.Slug, err)
			}
			mu.Lock()
			report.Routes[r.col.Name] = append(report.Routes[r.col.Name], r.path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for name, paths := range report.Routes {
		sort.Strings(paths)
		rec.AddRoutes(name, len(paths))
	}

	if err := writeSiteFiles(ctx, cfg, snap); err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	rec.ObserveBuildDuration(report.Duration)
	logger.Log.Info("build finished",
		"routes", report.Total(),
		"warnings", len(report.Warnings),
		"duration", report.Duration,
		"output", cfg.OutputDir,
	)
	return report, nil
}

// routeDir maps a site path to its directory under outputDir. Paths that
// would land outside outputDir are rejected.
func routeDir(outputDir, path string) (string, error) {
	root := filepath.Clean(outputDir)
	dir := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("route %q escapes output directory %q", path, outputDir)
	}
	return dir, nil
}

func writeRoute(ctx context.Context, cfg SiteConfig, r buildRoute) error {
	dir, err := routeDir(cfg.OutputDir, r.path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var page bytes.Buffer
	doc := head.Document(seo.MetadataFor(r.entry, r.col), seo.JSONLDFor(cfg.URL, *r.entry, r.col), r.entry)
	if err := doc.Render(ctx, &page); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), page.Bytes(), 0o644); err != nil {
		return err
	}

	data, err := json.MarshalIndent(NewSEOResponse(cfg.URL, r.entry, r.col), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "seo.json"), data, 0o644)
}

func writeSiteFiles(ctx context.Context, cfg SiteConfig, snap content.Snapshot) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	if err := writeXMLFile(filepath.Join(cfg.OutputDir, "sitemap.xml"), NewSitemap(cfg, snap)); err != nil {
		return err
	}
	if err := writeXMLFile(filepath.Join(cfg.OutputDir, "feed.xml"), NewFeed(cfg, snap.Entries(content.Posts))); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "robots.txt"), []byte(RobotsTxt(cfg)), 0o644); err != nil {
		return err
	}
	var notFound bytes.Buffer
	if err := head.Document(seo.MetadataFor(nil, content.Pages), nil, nil).Render(ctx, &notFound); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.OutputDir, "404.html"), notFound.Bytes(), 0o644)
}

func writeXMLFile(path string, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
