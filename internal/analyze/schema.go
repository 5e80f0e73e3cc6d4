package analyze

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// extractSchema scans the three structured-data embedding mechanisms
// (JSON-LD scripts, microdata attributes, RDFa attributes) and returns one
// flat list of blocks plus the number of malformed fragments skipped.
// A bad fragment never aborts the analysis.
func extractSchema(doc *html.Node) ([]model.SchemaBlock, int) {
	var blocks []model.SchemaBlock
	skipped := 0

	jsonLD, s := extractJSONLD(doc)
	blocks = append(blocks, jsonLD...)
	skipped += s

	blocks = append(blocks, extractMicrodata(doc)...)
	blocks = append(blocks, extractRDFa(doc)...)

	return blocks, skipped
}

// extractJSONLD parses every <script type="application/ld+json"> payload.
// An @graph array is flattened into independent blocks; a parse failure
// skips that script only.
func extractJSONLD(doc *html.Node) ([]model.SchemaBlock, int) {
	var blocks []model.SchemaBlock
	skipped := 0

	for _, script := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			strings.EqualFold(strings.TrimSpace(attrVal(n, "type")), "application/ld+json")
	}) {
		payload := textContent(script)
		if strings.TrimSpace(payload) == "" {
			continue
		}

		var parsed interface{}
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			skipped++
			continue
		}

		for _, entity := range flattenJSONLD(parsed) {
			blocks = append(blocks, jsonLDBlock(entity))
		}
	}

	return blocks, skipped
}

// flattenJSONLD expands top-level arrays and @graph members into a flat
// entity list.
func flattenJSONLD(parsed interface{}) []map[string]interface{} {
	var entities []map[string]interface{}

	switch v := parsed.(type) {
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				entities = append(entities, flattenJSONLD(m)...)
			}
		}
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]interface{}); ok {
					entities = append(entities, m)
				}
			}
			return entities
		}
		entities = append(entities, v)
	}

	return entities
}

func jsonLDBlock(entity map[string]interface{}) model.SchemaBlock {
	block := model.SchemaBlock{
		Type:       "Unknown",
		Properties: make(map[string]interface{}, len(entity)),
		Source:     model.SchemaSourceJSONLD,
	}

	switch t := entity["@type"].(type) {
	case string:
		block.Type = t
	case []interface{}:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				block.Type = s
			}
		}
	}

	for key, val := range entity {
		if key == "@type" {
			continue
		}
		block.Properties[key] = val // nesting preserved as parsed
	}

	return block
}

// extractMicrodata turns every itemscope container into one block, with
// descendant itemprop elements as its properties. A nested itemscope both
// contributes a nested property map and appears as its own block.
func extractMicrodata(doc *html.Node) []model.SchemaBlock {
	var blocks []model.SchemaBlock

	for _, scope := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasAttr(n, "itemscope")
	}) {
		block := model.SchemaBlock{
			Type:       schemaTypeName(attrVal(scope, "itemtype")),
			Properties: microdataProps(scope),
			Source:     model.SchemaSourceMicrodata,
		}
		blocks = append(blocks, block)
	}

	return blocks
}

// microdataProps collects itemprop values below a scope container, stopping
// descent at nested itemscope boundaries (their properties belong to the
// nested entity).
func microdataProps(scope *html.Node) map[string]interface{} {
	props := make(map[string]interface{})

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			name := attrVal(c, "itemprop")
			nested := hasAttr(c, "itemscope")

			if name != "" {
				if nested {
					props[name] = map[string]interface{}{
						"@type":      schemaTypeName(attrVal(c, "itemtype")),
						"properties": microdataProps(c),
					}
				} else {
					props[name] = microdataValue(c)
				}
			}
			if !nested {
				walk(c)
			}
		}
	}
	walk(scope)

	return props
}

// microdataValue resolves an itemprop element's value per the microdata
// precedence: content attribute, then element-specific URL attributes,
// then text content.
func microdataValue(n *html.Node) string {
	if v := attrVal(n, "content"); v != "" {
		return v
	}
	switch n.Data {
	case "a", "link":
		if v := attrVal(n, "href"); v != "" {
			return v
		}
	case "img", "audio", "video", "source", "iframe", "embed":
		if v := attrVal(n, "src"); v != "" {
			return v
		}
	case "time":
		if v := attrVal(n, "datetime"); v != "" {
			return v
		}
	case "meta":
		return attrVal(n, "content")
	}
	return visibleText(n)
}

// extractRDFa handles the triple-based embedding: elements carrying typeof
// become blocks, descendant property attributes become their properties.
// Compact prefixed names (schema:Article) are reduced to the local part.
func extractRDFa(doc *html.Node) []model.SchemaBlock {
	var blocks []model.SchemaBlock

	for _, scope := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attrVal(n, "typeof") != ""
	}) {
		props := make(map[string]interface{})

		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				if attrVal(c, "typeof") != "" {
					continue // nested entity, extracted as its own block
				}
				if name := attrVal(c, "property"); name != "" {
					if v := attrVal(c, "content"); v != "" {
						props[localName(name)] = v
					} else {
						props[localName(name)] = visibleText(c)
					}
				}
				walk(c)
			}
		}
		walk(scope)

		blocks = append(blocks, model.SchemaBlock{
			Type:       schemaTypeName(attrVal(scope, "typeof")),
			Properties: props,
			Source:     model.SchemaSourceRDFa,
		})
	}

	return blocks
}

// schemaTypeName reduces a type reference (full schema.org URL or compact
// prefixed name) to its bare type name; "Unknown" when absent.
func schemaTypeName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "Unknown"
	}
	// First token when multiple types are listed.
	if fields := strings.Fields(ref); len(fields) > 0 {
		ref = fields[0]
	}
	return localName(ref)
}

// localName strips URL or CURIE prefixes: "https://schema.org/Article" and
// "schema:Article" both become "Article".
func localName(ref string) string {
	if idx := strings.LastIndexAny(ref, "/#:"); idx >= 0 && idx < len(ref)-1 {
		return ref[idx+1:]
	}
	return ref
}

// findAll collects every node satisfying pred in document order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var matches []*html.Node
	if root == nil {
		return matches
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(n) {
			matches = append(matches, n)
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return matches
}

// textContent returns the raw concatenated text below a node (no trimming
// of markup, scripts included); used for script payloads.
func textContent(n *html.Node) string {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return buf.String()
}
