package content

import (
	"errors"
	"strings"
)

// CheckSlug reports whether slug can name a single path segment. Slugs may
// not be empty, contain a path separator or "..", or start with a dot.
func CheckSlug(slug string) error {
	switch {
	case slug == "":
		return errors.New("empty slug")
	case strings.ContainsAny(slug, `/\`):
		return errors.New("slug contains a path separator")
	case strings.Contains(slug, ".."):
		return errors.New(`slug contains ".."`)
	case strings.HasPrefix(slug, "."):
		return errors.New("slug starts with a dot")
	}
	return nil
}

// Resolve returns the entry whose slug equals slug exactly. The boolean is
// false when nothing matches, which callers treat as "not found" rather than
// as an error. Slugs are unique per collection, so the first match is the
// only one.
func Resolve(collection []Entry, slug string) (*Entry, bool) {
	for i := range collection {
		if collection[i].Slug == slug {
			return &collection[i], true
		}
	}
	return nil, false
}

// StaticParam is one statically generated route parameter set.
type StaticParam struct {
	Slug string `json:"slug"`
}

// EnumerateSlugs lists the route params for every entry in collection, in
// collection order. When filter is non-empty only entries whose slug appears
// in filter are returned; the order is still the collection's, not the
// filter's. The result is never nil.
func EnumerateSlugs(collection []Entry, filter []string) []StaticParam {
	allowed := toSet(filter)
	params := make([]StaticParam, 0, len(collection))
	for _, e := range collection {
		if allowed != nil {
			if _, ok := allowed[e.Slug]; !ok {
				continue
			}
		}
		params = append(params, StaticParam{Slug: e.Slug})
	}
	return params
}
