package seo

import (
	"encoding/json"
	"strings"

	"github.com/polything/polysite/content"
)

const (
	// SchemaContext is the @context of every emitted object.
	SchemaContext = "https://schema.org"
	// DefaultAuthor names the organisation credited when an entry names none.
	DefaultAuthor = "Polything Ltd"
)

// Object is a single JSON-LD document. Implementations are structs so the
// marshalled key order is fixed by field order.
type Object interface {
	SchemaType() string
}

// Organization is a schema.org Organization reference.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Thing is the primary object describing an entry. Exactly one of Name and
// Headline is set, depending on the collection.
type Thing struct {
	Context       string       `json:"@context"`
	Type          string       `json:"@type"`
	Name          string       `json:"name,omitempty"`
	Headline      string       `json:"headline,omitempty"`
	URL           string       `json:"url"`
	Description   string       `json:"description"`
	Image         string       `json:"image,omitempty"`
	Author        Organization `json:"author"`
	DatePublished string       `json:"datePublished,omitempty"`
	DateModified  string       `json:"dateModified,omitempty"`
}

// SchemaType returns the schema.org type of the primary object.
func (t *Thing) SchemaType() string { return t.Type }

// ListItem is one position of a BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbList is the navigation trail of an entry.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// SchemaType returns "BreadcrumbList".
func (b *BreadcrumbList) SchemaType() string { return b.Type }

// URL joins baseURL with the site path of slug in c.
func URL(baseURL string, c content.Collection, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + c.Path(slug)
}

// JSONLDFor derives the structured data of a resolved entry. The primary
// object always comes first; a BreadcrumbList follows only when the entry
// declares a non-empty trail.
func JSONLDFor(baseURL string, e content.Entry, c content.Collection) []Object {
	title := Title(&e)
	primary := &Thing{
		Context:       SchemaContext,
		Type:          firstNonEmpty(&e, schemaType(c)...),
		URL:           URL(baseURL, c, e.Slug),
		Description:   Description(&e, c),
		Image:         schemaImage(&e),
		Author:        Organization{Type: "Organization", Name: firstNonEmpty(&e, authorChain...)},
		DatePublished: firstNonEmpty(&e, publishedChain...),
		DateModified:  DateModified(&e),
	}
	if c.HeadlineKey == content.NameKey {
		primary.Name = title
	} else {
		primary.Headline = title
	}

	objects := []Object{primary}
	if crumbs := e.SchemaField().Breadcrumbs; len(crumbs) > 0 {
		objects = append(objects, breadcrumbList(crumbs))
	}
	return objects
}

func breadcrumbList(crumbs []content.Breadcrumb) *BreadcrumbList {
	items := make([]ListItem, len(crumbs))
	for i, b := range crumbs {
		items[i] = ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     b.Name,
			Item:     b.URL,
		}
	}
	return &BreadcrumbList{
		Context:         SchemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: items,
	}
}

// Marshal encodes each object for embedding in its own
// <script type="application/ld+json"> element. HTML-significant characters
// are escaped so the output cannot terminate the script element.
func Marshal(objects []Object) ([]string, error) {
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		b, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}
	return out, nil
}
