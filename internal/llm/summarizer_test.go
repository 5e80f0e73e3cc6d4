package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/pagelint/internal/model"
)

type stubProvider struct {
	summary string
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &SummarizeResponse{Summary: p.summary, Model: "stub-model"}, nil
}

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if s.IsEnabled() {
		t.Error("expected disabled summarizer for empty provider")
	}

	summary, err := s.GenerateSummary(context.Background(), model.Report{})
	if err != nil || summary != nil {
		t.Errorf("disabled summarizer should no-op, got %v, %v", summary, err)
	}
}

func TestSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "bogus"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestSummarizer_DoesNotTouchFindings(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{summary: "All good."}}

	report := model.Report{
		PageURL: "https://example.com/",
		Findings: []model.Finding{
			{RuleID: "dom-size-excessive", Severity: model.SeverityMedium, Title: "DOM too large"},
		},
	}

	summary, err := s.GenerateSummary(context.Background(), report)
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("expected enabled summary")
	}
	if summary.SummaryMD != "All good." {
		t.Errorf("unexpected summary: %q", summary.SummaryMD)
	}
	if summary.Provider != "stub" || summary.Model != "stub-model" {
		t.Errorf("unexpected provenance: %s/%s", summary.Provider, summary.Model)
	}

	if len(report.Findings) != 1 || report.Findings[0].RuleID != "dom-size-excessive" {
		t.Error("findings must be untouched by summarization")
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{err: errors.New("api down")}}

	if _, err := s.GenerateSummary(context.Background(), model.Report{}); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestBuildPrompt_ListsFindings(t *testing.T) {
	report := model.Report{
		PageURL: "https://example.com/page",
		Findings: []model.Finding{
			{RuleID: "heading-missing-h1", Severity: model.SeverityHigh, Title: "Missing H1"},
			{RuleID: "internal-nofollow", Severity: model.SeverityMedium, Title: "Internal nofollow link"},
		},
	}

	prompt := BuildPrompt(report)

	for _, want := range []string{"https://example.com/page", "heading-missing-h1", "internal-nofollow", "2 total"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
