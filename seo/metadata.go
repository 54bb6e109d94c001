package seo

import "github.com/polything/polysite/content"

// OpenGraph is the og:* block of a page.
type OpenGraph struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Type        string   `json:"type"`
}

// PageMetadata feeds <title>, the description meta, the canonical link and
// the Open Graph tags of a page. Only Title is set for not-found pages.
type PageMetadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Canonical   string     `json:"canonical,omitempty"`
	OpenGraph   *OpenGraph `json:"openGraph,omitempty"`
}

// NotFoundTitle is the title used when a slug does not resolve.
func NotFoundTitle(label string) string {
	return label + " Not Found"
}

// MetadataFor maps a resolved entry, or nil for a slug that did not resolve,
// to the metadata of its page.
func MetadataFor(e *content.Entry, c content.Collection) PageMetadata {
	if e == nil {
		return PageMetadata{Title: NotFoundTitle(c.NotFoundLabel)}
	}
	title := Title(e)
	description := Description(e, c)
	images := []string{}
	if img := schemaImage(e); img != "" {
		images = append(images, img)
	}
	return PageMetadata{
		Title:       title,
		Description: description,
		Canonical:   firstNonEmpty(e, canonicalChain...),
		OpenGraph: &OpenGraph{
			Title:       title,
			Description: description,
			Images:      images,
			Type:        c.OGType,
		},
	}
}
