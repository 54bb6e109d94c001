// Package head renders page metadata and structured data as HTML, ready to be
// dropped into a document <head>.
package head

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/seo"
)

// Head returns a component writing the title, description, canonical link,
// Open Graph tags and one JSON-LD script per object, in order.
func Head(meta seo.PageMetadata, objects []seo.Object) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := WriteHead(&buf, meta, objects); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// WriteHead writes the head tags for meta and objects to buf.
func WriteHead(buf *bytes.Buffer, meta seo.PageMetadata, objects []seo.Object) error {
	buf.WriteString("<title>")
	buf.WriteString(html.EscapeString(meta.Title))
	buf.WriteString("</title>\n")
	if meta.Description != "" {
		writeMeta(buf, "name", "description", meta.Description)
	}
	if meta.Canonical != "" {
		buf.WriteString(`<link rel="canonical" href="`)
		buf.WriteString(html.EscapeString(meta.Canonical))
		buf.WriteString("\">\n")
	}
	if og := meta.OpenGraph; og != nil {
		writeMeta(buf, "property", "og:title", og.Title)
		writeMeta(buf, "property", "og:description", og.Description)
		if og.Type != "" {
			writeMeta(buf, "property", "og:type", og.Type)
		}
		if meta.Canonical != "" {
			writeMeta(buf, "property", "og:url", meta.Canonical)
		}
		for _, img := range og.Images {
			writeMeta(buf, "property", "og:image", img)
		}
	}
	scripts, err := seo.Marshal(objects)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		buf.WriteString(`<script type="application/ld+json">`)
		buf.WriteString(s)
		buf.WriteString("</script>\n")
	}
	return nil
}

func writeMeta(buf *bytes.Buffer, attr, key, value string) {
	buf.WriteString(`<meta `)
	buf.WriteString(attr)
	buf.WriteString(`="`)
	buf.WriteString(key)
	buf.WriteString(`" content="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteString("\">\n")
}

// Document returns a bare HTML document around Head. The body only carries
// the hero heading; layout belongs to the site templates. A nil entry renders
// the not-found heading from meta.
func Document(meta seo.PageMetadata, objects []seo.Object, e *content.Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
		if err := WriteHead(&buf, meta, objects); err != nil {
			return err
		}
		buf.WriteString("</head>\n<body>\n")
		// Heading: hero title, then entry title, then the metadata title.
		heading, subtitle := meta.Title, ""
		if e != nil {
			if e.Title != "" {
				heading = e.Title
			}
			if e.Hero != nil {
				if e.Hero.Title != "" {
					heading = e.Hero.Title
				}
				subtitle = e.Hero.Subtitle
			}
		}
		buf.WriteString("<h1>")
		buf.WriteString(html.EscapeString(heading))
		buf.WriteString("</h1>\n")
		if subtitle != "" {
			buf.WriteString("<p>")
			buf.WriteString(html.EscapeString(subtitle))
			buf.WriteString("</p>\n")
		}
		buf.WriteString("</body>\n</html>\n")
		_, err := w.Write(buf.Bytes())
		return err
	})
}
