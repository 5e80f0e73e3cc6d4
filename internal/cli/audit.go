package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pagelint/internal/model"
	"github.com/ppiankov/pagelint/internal/pipeline"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	noCache       bool
	noFooter      bool
	insecureTLS   bool
	httpProxy     string
	httpsProxy    string
	centralEntity string
	llmEnabled    bool
	llmModel      string
	llmBaseURL    string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a single URL and generate a findings report",
	Long: `Audit fetches a page together with its robots.txt and sitemap, then:
- Reconstructs the heading hierarchy and content regions
- Measures entity prominence and per-section metrics
- Extracts JSON-LD, microdata and RDFa structured data
- Checks DOM size, slow-start placement and heading structure
- Cross-checks robots.txt, sitemap, noindex, canonical and nofollow signals

Example:
  pagelint audit https://example.com/pricing
  pagelint audit https://example.com --json report.json --md report.md
  pagelint audit https://example.com --entity "widgets" --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	auditCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall audit timeout")
	auditCmd.Flags().StringVar(&userAgent, "ua", "Pagelint/1.0 (+https://github.com/ppiankov/pagelint)", "HTTP User-Agent")
	auditCmd.Flags().Int64Var(&maxBytes, "max-bytes", 3_000_000, "max response bytes to read")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	auditCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	auditCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	auditCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Analysis flags
	auditCmd.Flags().StringVar(&centralEntity, "entity", "", "central entity for prominence analysis")

	// LLM flags
	auditCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	auditCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible API base URL")
}

// buildConfig merges flags into the default configuration.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	cfg.Analyzer.CentralEntity = centralEntity
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.BaseURL = llmBaseURL
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.AuditURL(ctx, url)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Collected %d findings\n", len(report.Findings))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
