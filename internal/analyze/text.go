package analyze

import (
	"strings"

	"golang.org/x/net/html"
)

// stripTags removes markup from a raw HTML span and returns the visible
// text, with entities decoded. Script and style payloads are dropped.
func stripTags(raw string) string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.TextToken:
			buf.Write(z.Text())
			buf.WriteByte(' ')
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style", "noscript", "iframe":
				skipRawContent(z, string(name))
			}
		}
	}

	return strings.Join(strings.Fields(buf.String()), " ")
}

// skipRawContent advances the tokenizer past the content of a non-visible
// element until its end tag (or EOF on broken markup).
func skipRawContent(z *html.Tokenizer, name string) {
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		if tt == html.EndTagToken {
			n, _ := z.TagName()
			if string(n) == name {
				return
			}
		}
	}
}

// countWords counts whitespace-separated words.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// countMentions counts non-overlapping case-insensitive occurrences of
// entity in text. Zero when either string is empty.
func countMentions(text, entity string) int {
	if text == "" || entity == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(entity))
}

// containsEntity reports a case-insensitive substring match.
func containsEntity(text, entity string) bool {
	if entity == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(entity))
}

// visibleText collects the text content of a parsed subtree in document
// order, skipping script, style, noscript and iframe payloads. The walk
// uses an explicit stack so pathological nesting cannot exhaust the
// goroutine stack.
func visibleText(root *html.Node) string {
	if root == nil {
		return ""
	}

	var buf strings.Builder
	stack := []*html.Node{root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				continue
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteByte(' ')
			}
		}

		// Push children in reverse so they pop in document order.
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return strings.TrimSpace(buf.String())
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether the node carries the named attribute at all.
func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}
