package analyze

import (
	"strings"

	"github.com/ppiankov/pagelint/internal/model"
)

// pageSignals are the document fragments prominence is computed from.
type pageSignals struct {
	Title           string
	MetaDescription string
	FirstH1         string
	FirstH2         string
}

// entityProminence computes how prominently the target entity appears.
// FirstMentionPosition is the relative offset of the first case-insensitive
// match inside the main content text; 1 signals "absent". The heading
// mention rate is (headings containing the entity) / (total headings),
// 0 when the document has no headings.
func entityProminence(entity string, sig pageSignals, regions regionExtraction, marks []headingMark) model.EntityProminence {
	p := model.EntityProminence{FirstMentionPosition: 1}
	if entity == "" {
		return p
	}

	p.InTitle = containsEntity(sig.Title, entity)
	p.InFirstH1 = containsEntity(sig.FirstH1, entity)
	p.InFirstH2 = containsEntity(sig.FirstH2, entity)
	p.InMetaDescription = containsEntity(sig.MetaDescription, entity)

	p.TotalMentions = countMentions(regions.BodyText, entity)
	p.MainMentions = countMentions(regions.MainText, entity)
	p.SidebarMentions = countMentions(regions.Sidebar, entity)
	p.FooterMentions = countMentions(regions.Footer, entity)

	if regions.MainText != "" {
		// Index and divisor must come from the same string: case folding can
		// change byte length, and a match index always stays below the length
		// of the string it was found in, keeping the ratio inside [0,1).
		lowered := strings.ToLower(regions.MainText)
		idx := strings.Index(lowered, strings.ToLower(entity))
		if idx >= 0 {
			p.FirstMentionPosition = float64(idx) / float64(len(lowered))
		}
	}

	if len(marks) > 0 {
		matched := 0
		for _, m := range marks {
			if containsEntity(m.Text, entity) {
				matched++
			}
		}
		p.HeadingMentionRate = float64(matched) / float64(len(marks))
	}

	return p
}

// firstHeadingText returns the text of the first heading with the given
// level, or "".
func firstHeadingText(marks []headingMark, level int) string {
	for _, m := range marks {
		if m.Level == level {
			return m.Text
		}
	}
	return ""
}
