package analyze

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, raw string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractRegions_SemanticContainers(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<header>site header words</header>
<nav>home about contact</nav>
<main>one two three four five six</main>
<aside>sidebar words here</aside>
<footer>copyright notice</footer>
</body></html>`)

	out := extractRegions(doc, DefaultHeadTrimRatio, DefaultTailTrimRatio)

	if !out.Regions.Main.Exists || out.Regions.Main.WordCount != 6 {
		t.Errorf("Unexpected main stats: %+v", out.Regions.Main)
	}
	if !out.Regions.Sidebar.Exists || out.Regions.Sidebar.WordCount != 3 {
		t.Errorf("Unexpected sidebar stats: %+v", out.Regions.Sidebar)
	}
	if !out.Regions.Nav.Exists || out.Regions.Nav.WordCount != 3 {
		t.Errorf("Unexpected nav stats: %+v", out.Regions.Nav)
	}
	if !out.Regions.Header.Exists || out.Regions.Header.WordCount != 3 {
		t.Errorf("Unexpected header stats: %+v", out.Regions.Header)
	}
	if !out.Regions.Footer.Exists || out.Regions.Footer.WordCount != 2 {
		t.Errorf("Unexpected footer stats: %+v", out.Regions.Footer)
	}
	if out.MainNode == nil {
		t.Error("Expected a main container node")
	}

	// 6 of 17 body words.
	wantPct := float64(6) / float64(17) * 100
	if got := out.Regions.Main.Percentage; got < wantPct-0.01 || got > wantPct+0.01 {
		t.Errorf("Main percentage = %f, want %f", got, wantPct)
	}
}

func TestExtractRegions_RoleFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div role="main">primary content here</div>
<div role="complementary">side stuff</div>
<div role="navigation">links</div>
<div role="banner">top</div>
<div role="contentinfo">bottom</div>
</body></html>`)

	out := extractRegions(doc, DefaultHeadTrimRatio, DefaultTailTrimRatio)

	for name, stats := range map[string]bool{
		"main":    out.Regions.Main.Exists,
		"sidebar": out.Regions.Sidebar.Exists,
		"nav":     out.Regions.Nav.Exists,
		"header":  out.Regions.Header.Exists,
		"footer":  out.Regions.Footer.Exists,
	} {
		if !stats {
			t.Errorf("Expected region %s to be found via role attribute", name)
		}
	}
	if out.Regions.Main.WordCount != 3 {
		t.Errorf("Main word count = %d, want 3", out.Regions.Main.WordCount)
	}
}

func TestExtractRegions_SemanticTagBeatsRole(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div role="main">role content</div>
<main>element content wins</main>
</body></html>`)

	out := extractRegions(doc, DefaultHeadTrimRatio, DefaultTailTrimRatio)
	if out.MainText != "element content wins" {
		t.Errorf("Expected <main> element to win, got %q", out.MainText)
	}
}

func TestExtractRegions_HeuristicFallback(t *testing.T) {
	// 20 words, no semantic containers: the middle 70% (words 4..16) is
	// treated as main content.
	words := []string{
		"w01", "w02", "w03", "w04", "w05", "w06", "w07", "w08", "w09", "w10",
		"w11", "w12", "w13", "w14", "w15", "w16", "w17", "w18", "w19", "w20",
	}
	doc := parseDoc(t, "<html><body><p>"+strings.Join(words, " ")+"</p></body></html>")

	out := extractRegions(doc, DefaultHeadTrimRatio, DefaultTailTrimRatio)

	if out.MainNode != nil {
		t.Error("Expected no main container node for heuristic fallback")
	}
	if !out.Regions.Main.Exists {
		t.Fatal("Expected heuristic main region to exist")
	}
	if out.Regions.Main.WordCount != 14 {
		t.Errorf("Fallback main word count = %d, want 14", out.Regions.Main.WordCount)
	}
	if !strings.HasPrefix(out.MainText, "w04") || !strings.HasSuffix(out.MainText, "w17") {
		t.Errorf("Unexpected fallback window: %q", out.MainText)
	}
	if out.Regions.Sidebar.Exists || out.Regions.Nav.Exists {
		t.Error("Absent regions must not exist in fallback mode")
	}
}

func TestExtractRegions_EmptyBody(t *testing.T) {
	doc := parseDoc(t, `<html><body></body></html>`)
	out := extractRegions(doc, DefaultHeadTrimRatio, DefaultTailTrimRatio)

	if out.Regions.Main.Exists {
		t.Error("Expected no main region for an empty body")
	}
	if out.Regions.Main.Percentage != 0 {
		t.Errorf("Expected zero percentage, got %f", out.Regions.Main.Percentage)
	}
}

func TestMiddleWords_TrimArithmetic(t *testing.T) {
	// 10 words with 15%/15% trims: drop 1 from each end.
	in := "a b c d e f g h i j"
	got := middleWords(in, 0.15, 0.15)
	if got != "b c d e f g h i" {
		t.Errorf("middleWords = %q", got)
	}

	// Degenerate trims fall back to the full text.
	if got := middleWords("x y", 0.9, 0.9); got != "x y" {
		t.Errorf("Expected full text for degenerate trims, got %q", got)
	}
}
