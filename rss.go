package polysite

import (
	"encoding/xml"
	"time"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/seo"
)

// Feed is an RSS 2.0 document.
type Feed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// NewFeed builds the RSS feed of posts in snapshot order. Titles and
// descriptions use the same fallbacks as the page metadata.
func NewFeed(cfg SiteConfig, posts []content.Entry) Feed {
	items := make([]rssItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(cfg.URL, content.Posts.Path(p.Slug))
		items = append(items, rssItem{
			Title:       seo.Title(p),
			Link:        postURL,
			Description: seo.Description(p, content.Posts),
			PubDate:     pubDate,
			GUID:        postURL,
			Categories:  append(append([]string(nil), p.Categories...), p.Tags...),
		})
	}
	return Feed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        BuildURL(cfg.URL),
			Description: cfg.Description,
			Items:       items,
		},
	}
}
