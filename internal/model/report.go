package model

import "time"

// Report is the complete result of auditing one page.
type Report struct {
	PageURL   string    `json:"page_url"`
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta"`

	Analysis *StructuralAnalysis `json:"analysis,omitempty"`

	Findings []Finding `json:"findings"`

	// SitemapURLs is the sitemap membership list used by the consistency
	// checks, recorded for reproducibility.
	SitemapURLs int `json:"sitemap_urls"`

	// RobotsTxtPresent records whether a robots.txt body was available.
	RobotsTxtPresent bool `json:"robots_txt_present"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects findings
}

// FetchMeta contains HTTP metadata from fetching the page.
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// LLMSummary is an optional generated narrative over the findings.
// It is produced after aggregation and never alters any finding.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// CountBySeverity tallies findings per severity level.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}
