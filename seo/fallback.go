// Package seo derives page metadata and schema.org JSON-LD from content
// entries. Every function here is pure: the same entry always yields the same
// output, and missing optional fields fall back rather than fail.
package seo

import (
	"fmt"

	"github.com/polything/polysite/content"
)

// accessor reads one candidate value for a field.
type accessor func(e *content.Entry) string

// firstNonEmpty evaluates chain in order and returns the first non-empty value.
func firstNonEmpty(e *content.Entry, chain ...accessor) string {
	for _, get := range chain {
		if v := get(e); v != "" {
			return v
		}
	}
	return ""
}

func seoTitle(e *content.Entry) string       { return e.SEOField().Title }
func seoDescription(e *content.Entry) string { return e.SEOField().Description }
func seoCanonical(e *content.Entry) string   { return e.SEOField().Canonical }
func entryTitle(e *content.Entry) string     { return e.Title }
func entryDate(e *content.Entry) string      { return e.Date }
func entryUpdated(e *content.Entry) string   { return e.Updated }
func schemaImage(e *content.Entry) string    { return e.SchemaField().Image }
func schemaAuthor(e *content.Entry) string   { return e.SchemaField().Author }
func schemaPublish(e *content.Entry) string  { return e.SchemaField().PublishDate }
func schemaModified(e *content.Entry) string { return e.SchemaField().ModifiedDate }

func constant(v string) accessor {
	return func(*content.Entry) string { return v }
}

func synthesized(c content.Collection) accessor {
	return func(e *content.Entry) string {
		if c.DescriptionFormat == "" || e.Title == "" {
			return ""
		}
		return fmt.Sprintf(c.DescriptionFormat, e.Title)
	}
}

func schemaType(c content.Collection) []accessor {
	return []accessor{
		func(e *content.Entry) string { return e.SchemaField().Type },
		constant(c.DefaultType),
	}
}

// Fallback chains per derived field.
var (
	titleChain     = []accessor{seoTitle, entryTitle}
	canonicalChain = []accessor{seoCanonical}
	authorChain    = []accessor{schemaAuthor, constant(DefaultAuthor)}
	publishedChain = []accessor{schemaPublish, entryDate}
	modifiedChain  = []accessor{schemaModified, entryUpdated, entryDate}
)

func descriptionChain(c content.Collection) []accessor {
	return []accessor{seoDescription, synthesized(c), entryTitle}
}

// Title resolves the display title of e.
func Title(e *content.Entry) string {
	return firstNonEmpty(e, titleChain...)
}

// Description resolves the description of e within collection c.
func Description(e *content.Entry, c content.Collection) string {
	return firstNonEmpty(e, descriptionChain(c)...)
}

// DateModified resolves the last-modified date of e as emitted in JSON-LD.
func DateModified(e *content.Entry) string {
	return firstNonEmpty(e, modifiedChain...)
}
