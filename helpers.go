package polysite

import (
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments. Paths carry no trailing
// slash; a bare base keeps its root slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// RobotsTxt renders robots.txt pointing crawlers at the sitemap.
func RobotsTxt(cfg SiteConfig) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\nSitemap: ")
	b.WriteString(BuildURL(cfg.URL, "sitemap.xml"))
	b.WriteString("\n")
	return b.String()
}
