package polysite

import (
	"github.com/polything/polysite/content"
	"github.com/polything/polysite/seo"
)

// SEOResponse is the body of /api/seo and of the seo.json file written next
// to every built page.
type SEOResponse struct {
	Metadata seo.PageMetadata `json:"metadata"`
	JSONLD   []seo.Object     `json:"jsonLd"`
}

// NewSEOResponse derives the response for e in col. A nil entry yields the
// not-found metadata and no structured data.
func NewSEOResponse(baseURL string, e *content.Entry, col content.Collection) SEOResponse {
	resp := SEOResponse{
		Metadata: seo.MetadataFor(e, col),
		JSONLD:   []seo.Object{},
	}
	if e != nil {
		resp.JSONLD = seo.JSONLDFor(baseURL, *e, col)
	}
	return resp
}
