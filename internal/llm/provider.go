// Package llm generates optional narrative summaries over audit findings.
// Summaries are produced after aggregation and never add, remove or reorder
// findings.
package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/pagelint/internal/model"
)

// Provider is the contract for summary backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a findings summary.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for one summary generation.
type SummarizeRequest struct {
	// Report is the audit report to summarize.
	Report model.Report

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse is the generated output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai" or "" (disabled). OpenAI-compatible endpoints
	// are reached by setting BaseURL.
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	MaxTokens int
}

// DefaultConfig returns sensible defaults with the summarizer disabled.
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts the application config into a provider config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is told
// to describe the findings it was given and nothing else.
func BuildPrompt(report model.Report) string {
	counts := report.CountBySeverity()

	prompt := fmt.Sprintf(`You are summarizing a technical page audit. The audit detects structural and crawl/index signal defects - it does not measure rankings or traffic.

RULES:
1. Describe ONLY the findings listed below. Do not invent defects or remedies beyond them.
2. If there are no findings, say the page passed all checks.
3. Keep the summary to 3-4 sentences, prioritizing critical and high severity items.

Page: %s
Findings: %d total (%d critical, %d high, %d medium, %d low)
`,
		report.PageURL,
		len(report.Findings),
		counts[model.SeverityCritical],
		counts[model.SeverityHigh],
		counts[model.SeverityMedium],
		counts[model.SeverityLow])

	for i, f := range report.Findings {
		if i >= 20 { // keep prompt size bounded
			prompt += fmt.Sprintf("... and %d more findings\n", len(report.Findings)-20)
			break
		}
		prompt += fmt.Sprintf("- [%s] %s: %s\n", f.Severity, f.RuleID, f.Title)
	}

	return prompt
}
