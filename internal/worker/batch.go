package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/pagelint/internal/model"
)

// Auditor audits a single URL. Implemented by pipeline.Pipeline.
type Auditor interface {
	AuditURL(ctx context.Context, url string) (*model.Report, error)
}

// AuditJob audits one URL, honoring the per-domain rate limit when set.
type AuditJob struct {
	URL     string
	Auditor Auditor
	Limiter *Limiter
}

// Execute runs the audit.
func (j *AuditJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &AuditResult{URL: j.URL, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	report, err := j.Auditor.AuditURL(ctx, j.URL)
	if err != nil {
		return &AuditResult{URL: j.URL, Error: err}
	}
	return &AuditResult{URL: j.URL, Report: report}
}

// AuditResult is the outcome of one audit job.
type AuditResult struct {
	URL    string
	Report *model.Report
	Error  error
}

// GetError returns the job error, if any.
func (r *AuditResult) GetError() error {
	return r.Error
}

// BatchProcessor audits many URLs concurrently.
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. requestsPerSecond <= 0
// disables rate limiting.
func NewBatchProcessor(auditor Auditor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessURLs audits the given URLs on the worker pool.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AuditResult {
	if len(urls) == 0 {
		return []*AuditResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AuditJob{
			URL:     url,
			Auditor: b.auditor,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	auditResults := make([]*AuditResult, len(results))
	for i, result := range results {
		auditResults[i] = result.(*AuditResult)
	}
	return auditResults
}

// ProcessFile reads URLs from a file and audits them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AuditResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line. Blank lines and
// #-comments are skipped; duplicates are dropped.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
