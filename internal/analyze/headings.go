package analyze

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// headingMark is one heading found during the forward scan.
// Start is the byte offset of the opening tag, End the offset just past the
// closing tag; the span a heading "owns" begins at End.
type headingMark struct {
	Level int
	Text  string
	Start int
	End   int
}

// headingLevel maps h1..h6 tag names to their level, 0 otherwise.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// scanHeadings extracts (level, text, offset) tuples in a single
// left-to-right pass over the raw document. Offsets come from summing the
// tokenizer's consumed bytes, so heading-dense documents stay O(n) instead
// of degrading to repeated substring searches.
func scanHeadings(raw string) []headingMark {
	var marks []headingMark
	z := html.NewTokenizer(strings.NewReader(raw))

	offset := 0
	open := -1 // index into marks of the heading being accumulated, -1 if none
	var text strings.Builder

	closeOpen := func(end int) {
		if open < 0 {
			return
		}
		marks[open].Text = strings.Join(strings.Fields(text.String()), " ")
		marks[open].End = end
		text.Reset()
		open = -1
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			closeOpen(offset)
			break
		}
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if level := headingLevel(string(name)); level > 0 {
				// A new heading before the previous one closed means
				// broken markup; end the previous span here.
				closeOpen(tokenStart)
				marks = append(marks, headingMark{Level: level, Start: tokenStart})
				open = len(marks) - 1
			}
		case html.TextToken:
			if open >= 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if level := headingLevel(string(name)); level > 0 && open >= 0 && marks[open].Level == level {
				closeOpen(offset)
			}
		}
	}

	return marks
}

// ownedSpanEnd returns the end offset of the text span heading i owns: the
// start of the next heading with level <= level(i), or document end.
func ownedSpanEnd(marks []headingMark, i, docLen int) int {
	for j := i + 1; j < len(marks); j++ {
		if marks[j].Level <= marks[i].Level {
			return marks[j].Start
		}
	}
	return docLen
}

// buildHeadingTree reconstructs the heading hierarchy from the flat mark
// sequence. A stack of open nodes is maintained: each heading pops entries
// with level >= its own, attaches to the remaining top (or becomes a root)
// and is pushed. One pass, O(n) in the number of headings, and every child's
// level is strictly greater than its parent's.
func buildHeadingTree(raw string, marks []headingMark, entity string) []*model.HeadingNode {
	var roots []*model.HeadingNode

	type frame struct {
		node  *model.HeadingNode
		level int
	}
	var stack []frame

	for i, m := range marks {
		span := stripTags(raw[m.End:ownedSpanEnd(marks, i, len(raw))])
		node := &model.HeadingNode{
			Level:          m.Level,
			Text:           m.Text,
			WordCount:      countWords(span),
			EntityMentions: countMentions(span, entity),
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= m.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, frame{node: node, level: m.Level})
	}

	return roots
}
