// Package analyze reconstructs a structural model of a web page from a flat
// markup string: heading hierarchy, content regions, per-section metrics,
// entity-prominence statistics, embedded structured data and DOM-size
// metrics. Every call is pure and synchronous; the analyzer holds no state
// between calls, so concurrent analyses need no coordination.
package analyze

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/pagelint/internal/model"
)

// Analyzer runs structural analysis with a fixed configuration.
type Analyzer struct {
	cfg model.AnalyzerConfig
}

// New creates an Analyzer. Zero-valued config fields fall back to defaults.
func New(cfg model.AnalyzerConfig) *Analyzer {
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = model.DefaultConfig().Analyzer.MaxDocumentBytes
	}
	if cfg.HeadTrimRatio <= 0 {
		cfg.HeadTrimRatio = DefaultHeadTrimRatio
	}
	if cfg.TailTrimRatio <= 0 {
		cfg.TailTrimRatio = DefaultTailTrimRatio
	}
	return &Analyzer{cfg: cfg}
}

// Analyze builds the structural model for one document. Oversized input is
// truncated to the configured ceiling rather than rejected; input that
// cannot be interpreted as markup at all yields a *model.ParseError.
func (a *Analyzer) Analyze(rawHTML, pageURL, centralEntity string) (*model.StructuralAnalysis, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, &model.ParseError{Input: "html", Err: errors.New("empty document")}
	}

	originalBytes := len(rawHTML)
	if originalBytes > a.cfg.MaxDocumentBytes {
		rawHTML = truncateUTF8(rawHTML, a.cfg.MaxDocumentBytes)
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &model.ParseError{Input: "html", Err: err}
	}

	marks := scanHeadings(rawHTML)
	regions := extractRegions(doc, a.cfg.HeadTrimRatio, a.cfg.TailTrimRatio)

	sig := pageSignals{
		Title:           documentTitle(doc),
		MetaDescription: metaDescription(doc),
		FirstH1:         firstHeadingText(marks, 1),
		FirstH2:         firstHeadingText(marks, 2),
	}

	schema, skipped := extractSchema(doc)

	analysis := &model.StructuralAnalysis{
		PageURL:              pageURL,
		CentralEntity:        centralEntity,
		HeadingTree:          buildHeadingTree(rawHTML, marks, centralEntity),
		Regions:              regions.Regions,
		MainContentText:      regions.MainText,
		MainContentWordCount: countWords(regions.MainText),
		Sections:             buildSections(rawHTML, marks, centralEntity),
		EntityProminence:     entityProminence(centralEntity, sig, regions, marks),
		SchemaMarkup:         schema,
		DOMMetrics:           domMetrics(doc, regions.MainNode, originalBytes),
		SkippedFragments:     skipped,
		AnalyzedAt:           time.Now().UTC(),
		Version:              model.AnalyzerVersion,
	}

	return analysis, nil
}

// truncateUTF8 cuts s at max bytes without splitting a multi-byte rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}

// documentTitle returns the text of the first <title> element.
func documentTitle(doc *html.Node) string {
	title := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "title"
	})
	if title == nil {
		return ""
	}
	return strings.TrimSpace(textContent(title))
}

// metaDescription returns the content of <meta name="description">,
// tolerating either attribute order.
func metaDescription(doc *html.Node) string {
	meta := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			strings.EqualFold(attrVal(n, "name"), "description")
	})
	if meta == nil {
		return ""
	}
	return strings.TrimSpace(attrVal(meta, "content"))
}
