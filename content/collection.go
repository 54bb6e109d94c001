package content

import "strings"

// Keys used for the primary title property of a structured-data object.
const (
	HeadlineKey = "headline"
	NameKey     = "name"
)

// HomeSlug is the page slug served at the site root.
const HomeSlug = "home"

// Collection describes how one named group of entries is addressed and
// described. The per-kind differences (URL prefix, default schema type, key
// naming, fallback copy) live here so the generators stay kind-agnostic.
type Collection struct {
	Name              string
	Kind              Kind
	NotFoundLabel     string
	PathPrefix        string
	DefaultType       string
	HeadlineKey       string
	DescriptionFormat string // fmt verb %s receives the entry title
	OGType            string
	// IndexSlug is served at the collection root instead of under its slug.
	IndexSlug string
	// Filter restricts the collection to the listed slugs. Empty means every
	// entry of Kind belongs to the collection.
	Filter []string
}

// DefaultServiceSlugs are the pages carved out of the general pages
// collection and served under /services.
var DefaultServiceSlugs = []string{
	"marketing-strategy",
	"marketing-services",
	"business-mentoring",
}

var (
	Pages = Collection{
		Name:              "pages",
		Kind:              KindPage,
		NotFoundLabel:     "Page",
		DefaultType:       "WebPage",
		HeadlineKey:       HeadlineKey,
		DescriptionFormat: "Learn more about %s",
		OGType:            "website",
		IndexSlug:         HomeSlug,
	}
	Services = Collection{
		Name:              "services",
		Kind:              KindPage,
		NotFoundLabel:     "Service",
		PathPrefix:        "/services",
		DefaultType:       "WebPage",
		HeadlineKey:       HeadlineKey,
		DescriptionFormat: "Service: %s",
		OGType:            "website",
		Filter:            DefaultServiceSlugs,
	}
	Posts = Collection{
		Name:              "posts",
		Kind:              KindPost,
		NotFoundLabel:     "Post",
		PathPrefix:        "/blog",
		DefaultType:       "BlogPosting",
		HeadlineKey:       HeadlineKey,
		DescriptionFormat: "Blog post: %s",
		OGType:            "article",
	}
	// Projects keep og:type "website" even though their schema type is
	// CreativeWork; the published site has always emitted it that way.
	Projects = Collection{
		Name:              "projects",
		Kind:              KindProject,
		NotFoundLabel:     "Project",
		PathPrefix:        "/work",
		DefaultType:       "CreativeWork",
		HeadlineKey:       NameKey,
		DescriptionFormat: "Learn more about %s",
		OGType:            "website",
	}
)

// All lists the built-in collections in route registration order.
func All() []Collection {
	return []Collection{Pages, Services, Posts, Projects}
}

// Lookup returns the built-in collection with the given name.
func Lookup(name string) (Collection, bool) {
	for _, c := range All() {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// WithFilter returns a copy of c restricted to slugs.
func (c Collection) WithFilter(slugs []string) Collection {
	c.Filter = append([]string(nil), slugs...)
	return c
}

// Path returns the site-relative path of slug within the collection.
func (c Collection) Path(slug string) string {
	root := strings.TrimSuffix(c.PathPrefix, "/") + "/"
	if c.IndexSlug != "" && slug == c.IndexSlug {
		return root
	}
	return root + slug
}

// Members narrows entries to the ones that belong to c, keeping their order.
func (c Collection) Members(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	allowed := toSet(c.Filter)
	for _, e := range entries {
		if e.Kind != "" && e.Kind != c.Kind {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[e.Slug]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
