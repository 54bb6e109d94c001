package polysite

import (
	"encoding/xml"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/seo"
)

// Sitemap is the sitemaps.org urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// NewSitemap lists every enumerated route of every collection. lastmod is the
// same dateModified the route's JSON-LD carries.
func NewSitemap(cfg SiteConfig, snap content.Snapshot) Sitemap {
	urls := []sitemapURL{}
	seen := make(map[string]struct{})
	for _, col := range cfg.Collections() {
		entries := snap.ByKind(col.Kind)
		for _, p := range content.EnumerateSlugs(entries, col.Filter) {
			if content.CheckSlug(p.Slug) != nil {
				continue
			}
			e, ok := content.Resolve(entries, p.Slug)
			if !ok {
				continue
			}
			loc := BuildURL(cfg.URL, col.Path(p.Slug))
			if _, dup := seen[loc]; dup {
				continue
			}
			seen[loc] = struct{}{}
			urls = append(urls, sitemapURL{
				Loc:     loc,
				LastMod: seo.DateModified(e),
			})
		}
	}
	return Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}
