// Package signals cross-checks crawl/index directives for logically
// contradictory combinations: robots rules vs sitemap membership, noindex
// vs canonical targets, and nofollow on internal links.
package signals

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
	"github.com/ppiankov/pagelint/internal/robots"
	"github.com/ppiankov/pagelint/internal/urlnorm"
)

// Input carries everything one consistency run needs. RobotsTxt and
// SitemapURLs are optional; absent inputs simply disable the checks that
// need them.
type Input struct {
	HTML        string
	PageURL     string
	RobotsTxt   string
	SitemapURLs []string
}

// Engine is a stateless set of consistency checks. A single Check call runs
// all of them and concatenates findings in checker order.
type Engine struct{}

// NewEngine creates a signal consistency engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Check runs every consistency check against one page.
func (e *Engine) Check(in Input) ([]model.Finding, error) {
	doc, err := html.Parse(strings.NewReader(in.HTML))
	if err != nil {
		return nil, &model.ParseError{Input: "html", Err: err}
	}

	page := extractPageSignals(doc)

	var findings []model.Finding
	findings = append(findings, e.checkRobotsVsSitemap(in)...)
	findings = append(findings, e.checkNoindexVsCanonical(in.PageURL, page)...)
	findings = append(findings, e.checkInternalNofollow(in.PageURL, page)...)
	return findings, nil
}

// checkRobotsVsSitemap flags a URL that is both disallowed by robots.txt
// (for the wildcard agent) and listed in the sitemap.
func (e *Engine) checkRobotsVsSitemap(in Input) []model.Finding {
	if in.RobotsTxt == "" || len(in.SitemapURLs) == 0 {
		return nil
	}

	blocked := robots.Parse(in.RobotsTxt).IsBlocked(in.PageURL, "*")
	if !blocked {
		return nil
	}

	norm := urlnorm.Normalize(in.PageURL)
	inSitemap := false
	for _, u := range in.SitemapURLs {
		if urlnorm.Normalize(u) == norm {
			inSitemap = true
			break
		}
	}
	if !inSitemap {
		return nil
	}

	return []model.Finding{{
		RuleID:   "robots-sitemap-conflict",
		Severity: model.SeverityHigh,
		Title:    "URL blocked by robots.txt but listed in sitemap",
		Description: "The page is disallowed for crawling by robots.txt while the sitemap " +
			"advertises it for indexing. Crawlers receive contradictory instructions; " +
			"remove the URL from the sitemap or lift the robots.txt block.",
		ExampleFix: "Remove " + norm + " from the sitemap, or delete the matching Disallow rule.",
	}}
}

// checkNoindexVsCanonical flags a noindex directive combined with a
// canonical link pointing at a different URL. A self-referencing canonical
// next to noindex is not a conflict.
func (e *Engine) checkNoindexVsCanonical(pageURL string, page pageDirectives) []model.Finding {
	if !page.Noindex || page.CanonicalHref == "" {
		return nil
	}

	canonical := urlnorm.Normalize(page.CanonicalHref)
	self := urlnorm.Normalize(pageURL)
	if canonical == self {
		return nil
	}

	return []model.Finding{{
		RuleID:   "noindex-canonical-conflict",
		Severity: model.SeverityHigh,
		Title:    "noindex combined with a non-self canonical",
		Description: "The robots meta tag asks engines not to index this page while the " +
			"canonical link asserts " + canonical + " as the preferred URL. The noindex " +
			"can bleed onto the canonical target; pick one signal.",
		Element:    page.RobotsMetaTag + " / " + page.CanonicalTag,
		ExampleFix: fmt.Sprintf(`<link rel="canonical" href="%s">`, self),
	}}
}

// checkInternalNofollow flags nofollow on same-host links, which only
// wastes internal link equity.
func (e *Engine) checkInternalNofollow(pageURL string, page pageDirectives) []model.Finding {
	var findings []model.Finding
	for _, a := range page.NofollowAnchors {
		if !urlnorm.SameHost(pageURL, a.Href) {
			continue
		}
		findings = append(findings, model.Finding{
			RuleID:   "internal-nofollow",
			Severity: model.SeverityMedium,
			Title:    "Internal link marked nofollow",
			Description: "The anchor points at the same host but carries rel=\"nofollow\", " +
				"which discards internal link equity without keeping crawlers out.",
			Element:    a.Raw,
			ExampleFix: fmt.Sprintf(`<a href="%s">...</a>`, a.Href),
		})
	}
	return findings
}

// anchor is one nofollow link as found in the markup.
type anchor struct {
	Href string
	Raw  string
}

// pageDirectives are the crawl/index signals extracted from one document.
type pageDirectives struct {
	Noindex         bool
	RobotsMetaTag   string
	CanonicalHref   string
	CanonicalTag    string
	NofollowAnchors []anchor
}

// extractPageSignals pulls the robots meta directive, the canonical link
// and all nofollow anchors out of the parsed document. Attribute order
// within the tags does not matter.
func extractPageSignals(doc *html.Node) pageDirectives {
	var page pageDirectives

	stack := []*html.Node{doc}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if strings.EqualFold(attr(n, "name"), "robots") {
					content := attr(n, "content")
					if directiveListContains(content, "noindex") {
						page.Noindex = true
						page.RobotsMetaTag = renderTag(n)
					}
				}
			case "link":
				if relListContains(attr(n, "rel"), "canonical") && page.CanonicalHref == "" {
					page.CanonicalHref = strings.TrimSpace(attr(n, "href"))
					page.CanonicalTag = renderTag(n)
				}
			case "a":
				if relListContains(attr(n, "rel"), "nofollow") {
					if href := strings.TrimSpace(attr(n, "href")); href != "" && !strings.HasPrefix(href, "#") {
						page.NofollowAnchors = append(page.NofollowAnchors, anchor{Href: href, Raw: renderTag(n)})
					}
				}
			}
		}

		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return page
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// directiveListContains matches one token in a comma-separated robots
// directive value.
func directiveListContains(value, token string) bool {
	for _, part := range strings.Split(value, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// relListContains matches one token in a space-separated rel value.
func relListContains(value, token string) bool {
	for _, part := range strings.Fields(value) {
		if strings.EqualFold(part, token) {
			return true
		}
	}
	return false
}

// renderTag reconstructs a readable form of an element's opening tag for
// the finding's affected-element field.
func renderTag(n *html.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Val)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}
