package analyze

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// Default trim ratios for the heuristic main-content fallback: when no
// semantic container is found, the middle of the body word sequence is
// treated as main content on the reasoning that boilerplate concentrates at
// the extremes. Kept as named constants because changing them changes audit
// results.
const (
	DefaultHeadTrimRatio = 0.15
	DefaultTailTrimRatio = 0.15
)

// regionMatcher locates a candidate container for one region, or nil.
type regionMatcher func(*html.Node) *html.Node

// regionMatchers lists the matchers tried per region, in priority order;
// the first success wins. Each region has a semantic element and an
// ARIA-role equivalent.
var regionMatchers = map[string][]regionMatcher{
	"main": {
		elementMatcher("main"),
		roleMatcher("main"),
		elementMatcher("article"),
	},
	"sidebar": {
		elementMatcher("aside"),
		roleMatcher("complementary"),
	},
	"nav": {
		elementMatcher("nav"),
		roleMatcher("navigation"),
	},
	"header": {
		elementMatcher("header"),
		roleMatcher("banner"),
	},
	"footer": {
		elementMatcher("footer"),
		roleMatcher("contentinfo"),
	},
}

func elementMatcher(name string) regionMatcher {
	return func(doc *html.Node) *html.Node {
		return findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == name
		})
	}
}

func roleMatcher(role string) regionMatcher {
	return func(doc *html.Node) *html.Node {
		return findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && strings.EqualFold(attrVal(n, "role"), role)
		})
	}
}

// findFirst returns the first node in document order satisfying pred,
// walking with an explicit stack.
func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(n) {
			return n
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

// findRegion tries the matchers for one region in order.
func findRegion(doc *html.Node, region string) *html.Node {
	for _, match := range regionMatchers[region] {
		if n := match(doc); n != nil {
			return n
		}
	}
	return nil
}

// regionExtraction is the result of region detection for one document.
type regionExtraction struct {
	Regions  model.Regions
	MainNode *html.Node // nil when the heuristic fallback was used
	MainText string
	Sidebar  string
	Footer   string
	BodyText string
}

// extractRegions locates the five structural regions and computes their
// word-level shares. When no main-content container exists, the fallback
// takes the middle of the body word sequence, trimming headTrim/tailTrim
// from the extremes.
func extractRegions(doc *html.Node, headTrim, tailTrim float64) regionExtraction {
	body := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "body"
	})

	bodyText := visibleText(body)
	totalWords := countWords(bodyText)

	var out regionExtraction
	out.BodyText = bodyText

	texts := make(map[string]string, 5)
	for _, region := range []string{"main", "sidebar", "nav", "header", "footer"} {
		node := findRegion(doc, region)
		if node == nil {
			continue
		}
		if region == "main" {
			out.MainNode = node
		}
		texts[region] = visibleText(node)
	}

	if _, ok := texts["main"]; !ok && bodyText != "" {
		texts["main"] = middleWords(bodyText, headTrim, tailTrim)
	}

	out.MainText = texts["main"]
	out.Sidebar = texts["sidebar"]
	out.Footer = texts["footer"]

	stats := func(region string) model.RegionStats {
		text, ok := texts[region]
		if !ok {
			return model.RegionStats{}
		}
		words := countWords(text)
		pct := 0.0
		if totalWords > 0 {
			pct = float64(words) / float64(totalWords) * 100
		}
		return model.RegionStats{Exists: true, WordCount: words, Percentage: pct}
	}

	out.Regions = model.Regions{
		Main:    stats("main"),
		Sidebar: stats("sidebar"),
		Nav:     stats("nav"),
		Header:  stats("header"),
		Footer:  stats("footer"),
	}

	return out
}

// middleWords drops the leading headTrim and trailing tailTrim shares of the
// word sequence and rejoins the remainder.
func middleWords(text string, headTrim, tailTrim float64) string {
	words := strings.Fields(text)
	n := len(words)
	if n == 0 {
		return ""
	}
	from := int(float64(n) * headTrim)
	to := n - int(float64(n)*tailTrim)
	if from >= to {
		return text
	}
	return strings.Join(words[from:to], " ")
}
