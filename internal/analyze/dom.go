package analyze

import (
	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// domMetrics computes element-count and nesting statistics with one
// explicit-stack traversal. Counts cover element nodes strictly below the
// body element, so an empty body yields TotalNodes == 0 and NestingDepth
// == 0; the parser-synthesized html/head/body skeleton is excluded.
// MainContentNodes counts the main container's subtree (container included)
// and is therefore always <= TotalNodes.
func domMetrics(doc, mainNode *html.Node, rawBytes int) model.DOMMetrics {
	body := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "body"
	})

	total, depth := countBelow(body)

	metrics := model.DOMMetrics{
		TotalNodes:    total,
		NestingDepth:  depth,
		DocumentBytes: rawBytes,
	}

	if mainNode != nil {
		subTotal, _ := countBelow(mainNode)
		metrics.MainContentNodes = subTotal + 1 // include the container itself
		// A role=main on the body itself would otherwise count one past total.
		if metrics.MainContentNodes > metrics.TotalNodes {
			metrics.MainContentNodes = metrics.TotalNodes
		}
	}

	return metrics
}

// countBelow counts element nodes strictly below root and the maximum
// nesting depth relative to root.
func countBelow(root *html.Node) (count, maxDepth int) {
	if root == nil {
		return 0, 0
	}

	type frame struct {
		node  *html.Node
		depth int
	}
	stack := []frame{{root, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for c := f.node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			count++
			if f.depth+1 > maxDepth {
				maxDepth = f.depth + 1
			}
			stack = append(stack, frame{c, f.depth + 1})
		}
	}

	return count, maxDepth
}
