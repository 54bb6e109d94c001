// Package content holds the structured records the site is built from and the
// lookups run over them: slug resolution and static route enumeration.
//
// Records are produced by an external ingestion step and are treated as
// read-only snapshots. Nothing in this package mutates an Entry.
package content

// Kind tags an Entry with the collection family it belongs to.
type Kind string

const (
	KindPage    Kind = "page"
	KindPost    Kind = "post"
	KindProject Kind = "project"
)

// Entry is a single content record (static page, blog post or case study).
type Entry struct {
	Kind       Kind     `json:"kind" yaml:"kind,omitempty"`
	Slug       string   `json:"slug" yaml:"slug"`
	Title      string   `json:"title" yaml:"title"`
	Date       string   `json:"date,omitempty" yaml:"date,omitempty"`
	Updated    string   `json:"updated,omitempty" yaml:"updated,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Hero       *Hero    `json:"hero,omitempty" yaml:"hero,omitempty"`
	SEO        *SEO     `json:"seo,omitempty" yaml:"seo,omitempty"`
	Body       string   `json:"body,omitempty" yaml:"body,omitempty"`
}

// Hero is the optional banner block shown above an entry.
type Hero struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
}

// SEO carries the optional author-supplied search metadata.
type SEO struct {
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Canonical   string  `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema overrides the structured-data fields derived for an entry.
type Schema struct {
	Type         string       `json:"type,omitempty" yaml:"type,omitempty"`
	Image        string       `json:"image,omitempty" yaml:"image,omitempty"`
	Author       string       `json:"author,omitempty" yaml:"author,omitempty"`
	PublishDate  string       `json:"publishDate,omitempty" yaml:"publishDate,omitempty"`
	ModifiedDate string       `json:"modifiedDate,omitempty" yaml:"modifiedDate,omitempty"`
	Breadcrumbs  []Breadcrumb `json:"breadcrumbs,omitempty" yaml:"breadcrumbs,omitempty"`
}

// Breadcrumb is one step of a navigation trail, root first.
type Breadcrumb struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// LastModified returns Updated, or Date when the entry was never updated.
func (e *Entry) LastModified() string {
	if e.Updated != "" {
		return e.Updated
	}
	return e.Date
}

// SEOField returns the author-supplied SEO block, never nil.
func (e *Entry) SEOField() SEO {
	if e == nil || e.SEO == nil {
		return SEO{}
	}
	return *e.SEO
}

// SchemaField returns the author-supplied schema block, never nil.
func (e *Entry) SchemaField() Schema {
	seo := e.SEOField()
	if seo.Schema == nil {
		return Schema{}
	}
	return *seo.Schema
}
