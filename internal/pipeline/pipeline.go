// Package pipeline orchestrates a complete page audit: fetch the page plus
// its robots.txt and sitemap, run the structural analyzer, the consistency
// checks and the rule checkers, and aggregate everything into one report.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ppiankov/pagelint/internal/analyze"
	"github.com/ppiankov/pagelint/internal/cache"
	"github.com/ppiankov/pagelint/internal/checks"
	"github.com/ppiankov/pagelint/internal/llm"
	"github.com/ppiankov/pagelint/internal/model"
	"github.com/ppiankov/pagelint/internal/report"
	"github.com/ppiankov/pagelint/internal/signals"
)

// Pipeline wires the audit stages together.
type Pipeline struct {
	fetcher    *Fetcher
	analyzer   *analyze.Analyzer
	engine     *signals.Engine
	checkers   []checks.Checker
	renderer   *report.Renderer
	summarizer *llm.Summarizer // nil if disabled
	store      cache.Cache     // nil if disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		fetcher: NewFetcher(
			cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy,
		),
		analyzer:   analyze.New(cfg.Analyzer),
		engine:     signals.NewEngine(),
		checkers:   checks.BuiltIn(),
		renderer:   report.NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		store:      store,
		config:     cfg,
	}
}

// AuditURL fetches and audits a single page.
func (p *Pipeline) AuditURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetchResult, err := p.fetchCached(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	robotsTxt, robotsPresent := p.fetchSupporting(ctx, fetchResult.FinalURL, "/robots.txt")

	var sitemapURLs []string
	if sitemapBody, ok := p.fetchSupporting(ctx, fetchResult.FinalURL, "/sitemap.xml"); ok {
		sitemapURLs = parseSitemap(sitemapBody)
	}

	rep, err := p.audit(ctx, fetchResult.HTML, fetchResult.FinalURL, robotsTxt, sitemapURLs)
	if err != nil {
		return nil, err
	}
	rep.FetchMeta = fetchResult.Meta
	rep.RobotsTxtPresent = robotsPresent
	return rep, nil
}

// AuditHTML audits an already-fetched document, without network access.
// Consistency checks that need robots.txt or sitemap input are skipped.
func (p *Pipeline) AuditHTML(ctx context.Context, rawHTML, pageURL string) (*model.Report, error) {
	return p.audit(ctx, rawHTML, pageURL, "", nil)
}

func (p *Pipeline) audit(ctx context.Context, rawHTML, pageURL, robotsTxt string, sitemapURLs []string) (*model.Report, error) {
	verbose := p.config.Output.Verbose

	analysis, err := p.analyzer.Analyze(rawHTML, pageURL, p.config.Analyzer.CentralEntity)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed structure: %d headings, %d DOM nodes\n",
			len(analysis.HeadingTree), analysis.DOMMetrics.TotalNodes)
	}

	signalFindings, err := p.engine.Check(signals.Input{
		HTML:        rawHTML,
		PageURL:     pageURL,
		RobotsTxt:   robotsTxt,
		SitemapURLs: sitemapURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("consistency checks: %w", err)
	}

	page := checks.PageContext{Analysis: analysis, HTML: rawHTML}
	lists := make([][]model.Finding, 0, len(p.checkers)+1)
	lists = append(lists, signalFindings)
	for _, c := range p.checkers {
		lists = append(lists, c.Check(page))
	}

	rep := &model.Report{
		PageURL:          pageURL,
		FetchedAt:        time.Now().UTC(),
		Analysis:         analysis,
		Findings:         report.Aggregate(lists...),
		SitemapURLs:      len(sitemapURLs),
		RobotsTxtPresent: robotsTxt != "",
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Collected %d findings\n", len(rep.Findings))
	}

	// Summary generation runs last and never alters findings.
	if p.summarizer.IsEnabled() {
		llmSummary, err := p.summarizer.GenerateSummary(ctx, *rep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			rep.LLM = llmSummary
		}
	}

	return rep, nil
}

// fetchCached fetches the page through the cache when one is configured.
func (p *Pipeline) fetchCached(ctx context.Context, rawURL string) (*FetchResult, error) {
	if p.store == nil {
		return p.fetcher.FetchWithRetry(ctx, rawURL)
	}

	key := cache.Key(rawURL)
	if data, found := p.store.Get(key); found {
		var cached FetchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✓ Cache hit: %s\n", rawURL)
			}
			return &cached, nil
		}
	}

	result, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(result); err == nil {
		if err := p.store.Set(key, data, 0); err != nil && p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}
	return result, nil
}

// fetchSupporting fetches a root-relative resource like /robots.txt from the
// page's origin. Missing resources and fetch failures are tolerated.
func (p *Pipeline) fetchSupporting(ctx context.Context, pageURL, path string) (string, bool) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	target := parsed.Scheme + "://" + parsed.Host + path

	if p.store != nil {
		if data, found := p.store.Get(cache.Key(target)); found {
			return string(data), len(data) > 0
		}
	}

	body, found, err := p.fetcher.FetchOptional(ctx, target)
	if err != nil {
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: fetch %s: %v\n", target, err)
		}
		return "", false
	}

	if p.store != nil {
		// Absence is cached too, as an empty body.
		_ = p.store.Set(cache.Key(target), []byte(body), 0)
	}
	return body, found
}

// RenderReport writes the report to the requested outputs and prints a
// summary to stdout.
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(rep)
	return nil
}
