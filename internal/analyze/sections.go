package analyze

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// buildSections produces the H2-rooted section analyses. Section k's content
// spans from the end of H2_k to the start of H2_(k+1) (or document end);
// H3 children are segmented the same way one level down inside that span.
func buildSections(raw string, marks []headingMark, entity string) []model.SectionAnalysis {
	var sections []model.SectionAnalysis

	for i, m := range marks {
		if m.Level != 2 {
			continue
		}
		end := nextAtOrAbove(marks, i, 2, len(raw))
		sec := analyzeSpan(raw, m, m.End, end, entity)

		// H3 blocks physically between this H2 and the next H2.
		for j := i + 1; j < len(marks) && marks[j].Start < end; j++ {
			if marks[j].Level != 3 {
				continue
			}
			subEnd := nextAtOrAbove(marks, j, 3, len(raw))
			if subEnd > end {
				subEnd = end
			}
			sec.SubSections = append(sec.SubSections, analyzeSpan(raw, marks[j], marks[j].End, subEnd, entity))
		}

		sections = append(sections, sec)
	}

	return sections
}

// nextAtOrAbove returns the start offset of the next heading after i with
// level <= maxLevel, or docLen if none follows.
func nextAtOrAbove(marks []headingMark, i, maxLevel, docLen int) int {
	for j := i + 1; j < len(marks); j++ {
		if marks[j].Level <= maxLevel {
			return marks[j].Start
		}
	}
	return docLen
}

// analyzeSpan computes the per-section metrics for one raw span.
func analyzeSpan(raw string, m headingMark, start, end int, entity string) model.SectionAnalysis {
	span := raw[start:end]
	text := stripTags(span)

	return model.SectionAnalysis{
		Heading:        m.Text,
		Level:          m.Level,
		WordCount:      countWords(text),
		ParagraphCount: countStartTags(span, "p"),
		ListCount:      countStartTags(span, "ul") + countStartTags(span, "ol"),
		TableCount:     countStartTags(span, "table"),
		ImageCount:     countStartTags(span, "img"),
		EntityMentions: countMentions(text, entity),
	}
}

// countStartTags counts opening (or self-closing) tags with the given name
// inside a raw fragment. Tokenizing avoids false positives like "<pre"
// matching a "<p" prefix scan.
func countStartTags(fragment, name string) int {
	count := 0
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return count
		case html.StartTagToken, html.SelfClosingTagToken:
			n, _ := z.TagName()
			if string(n) == name {
				count++
			}
		}
	}
}
