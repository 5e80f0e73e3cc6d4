package pipeline

import (
	"encoding/xml"
	"strings"
)

// sitemapURLSet matches both <urlset> and <sitemapindex> documents; only
// the <loc> values matter for membership checks.
type sitemapURLSet struct {
	URLs     []sitemapEntry `xml:"url"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// parseSitemap extracts the URL list from a sitemap XML body. Malformed XML
// yields an empty list rather than an error; consistency checks simply run
// without sitemap input.
func parseSitemap(body string) []string {
	var set sitemapURLSet
	if err := xml.Unmarshal([]byte(body), &set); err != nil {
		return nil
	}

	var urls []string
	for _, entry := range set.URLs {
		if loc := strings.TrimSpace(entry.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}
	// A sitemap index lists child sitemaps, not pages; those are not page
	// memberships and are ignored.
	return urls
}
