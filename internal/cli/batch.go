package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pagelint/internal/pipeline"
	"github.com/ppiankov/pagelint/internal/report"
	"github.com/ppiankov/pagelint/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	requestsRPS  float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Audit multiple URLs from a file in parallel",
	Long: `Batch audits multiple URLs concurrently:
- Read URLs from input file (one per line, # comments allowed)
- Process URLs in parallel with configurable worker count
- Rate-limit requests per target domain
- Write an individual report pair for each URL

Example:
  pagelint batch urls.txt
  pagelint batch urls.txt --concurrency 10 --output-dir ./reports
  pagelint batch urls.txt --rps 1 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./pagelint-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&requestsRPS, "rps", 2, "max requests per second per domain")

	batchCmd.Flags().DurationVar(&timeout, "audit-timeout", 60*time.Second, "timeout for individual audits")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Pagelint/1.0 (+https://github.com/ppiankov/pagelint)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().StringVar(&centralEntity, "entity", "", "central entity for prominence analysis")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\nPagelint batch\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n\n", batchTimeout)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Concurrency.RequestsPerSecond = requestsRPS

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		slug := reportSlug(result.URL)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d findings)\n", result.URL, len(result.Report.Findings))
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d ok, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// reportSlug derives a filesystem-safe name from a URL.
func reportSlug(rawURL string) string {
	s := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		s = parsed.Host + parsed.Path
	}

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = strings.Trim(replacer.Replace(s), "_")

	if s == "" {
		s = "report"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
