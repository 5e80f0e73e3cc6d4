package pipeline

import "testing"

func TestParseSitemap(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc><lastmod>2024-01-01</lastmod></url>
  <url><loc> https://example.com/about </loc></url>
  <url><loc></loc></url>
</urlset>`

	urls := parseSitemap(body)
	want := []string{"https://example.com/", "https://example.com/about"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i, u := range want {
		if urls[i] != u {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], u)
		}
	}
}

func TestParseSitemap_Index(t *testing.T) {
	// A sitemap index lists child sitemaps, not page memberships.
	body := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/sitemap-1.xml</loc></sitemap>
</sitemapindex>`

	if urls := parseSitemap(body); len(urls) != 0 {
		t.Errorf("expected no page URLs from index, got %v", urls)
	}
}

func TestParseSitemap_Malformed(t *testing.T) {
	if urls := parseSitemap("this is not xml <<<"); urls != nil {
		t.Errorf("expected nil for malformed XML, got %v", urls)
	}
}
