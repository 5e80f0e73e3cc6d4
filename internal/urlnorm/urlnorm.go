// Package urlnorm produces a canonical string form of a URL for equality
// comparisons between crawl/index signals (canonical tags, sitemap entries,
// robots rules).
package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of rawURL: scheme and host lowercased,
// default ports stripped, trailing slash removed unless the path is exactly
// root, query preserved verbatim, fragment dropped.
//
// Normalize never fails and is idempotent: when rawURL cannot be parsed as an
// absolute URL it falls back to trimming trailing slashes from the raw string.
func Normalize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fallbackNormalize(trimmed)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	host = stripDefaultPort(scheme, host)

	path := u.EscapedPath()
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String()
}

// stripDefaultPort drops :80 for http and :443 for https.
func stripDefaultPort(scheme, host string) string {
	switch scheme {
	case "http":
		return strings.TrimSuffix(host, ":80")
	case "https":
		return strings.TrimSuffix(host, ":443")
	}
	return host
}

// fallbackNormalize handles relative or malformed inputs. Trimming trailing
// slashes keeps the function idempotent without pretending to understand the
// string.
func fallbackNormalize(raw string) string {
	if raw == "/" {
		return raw
	}
	return strings.TrimRight(raw, "/")
}

// SameHost reports whether href points at the same host as pageURL.
// Relative and path-only hrefs count as same-host; absolute URLs must match
// the page host case-insensitively.
func SameHost(pageURL, href string) bool {
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	if h.Host == "" {
		// Path-only, query-only or fragment-only reference.
		return !strings.HasPrefix(strings.ToLower(h.Scheme), "mailto") &&
			!strings.EqualFold(h.Scheme, "javascript")
	}

	p, err := url.Parse(pageURL)
	if err != nil || p.Host == "" {
		return false
	}
	return strings.EqualFold(stripAnyDefaultPort(h), stripAnyDefaultPort(p))
}

func stripAnyDefaultPort(u *url.URL) string {
	host := strings.ToLower(u.Host)
	return stripDefaultPort(strings.ToLower(u.Scheme), host)
}
