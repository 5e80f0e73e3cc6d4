package model

import "time"

// Config is the complete pagelint configuration.
// Hierarchy (highest to lowest priority): CLI flags, PAGELINT_* environment
// variables, ~/.pagelint/config.yaml, defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Analyzer    AnalyzerConfig    `yaml:"analyzer" mapstructure:"analyzer"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// HTTPConfig controls page, robots.txt and sitemap fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of fetched bodies. The analysis core itself
// never caches; callers own storage.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// AnalyzerConfig holds the structural analyzer's tunables. The trim ratios
// feed the fallback main-content heuristic: when no semantic container is
// found, the middle of the body word sequence (minus the head and tail
// trims) is treated as main content.
type AnalyzerConfig struct {
	MaxDocumentBytes int     `yaml:"max_document_bytes" mapstructure:"max_document_bytes"`
	HeadTrimRatio    float64 `yaml:"head_trim_ratio" mapstructure:"head_trim_ratio"`
	TailTrimRatio    float64 `yaml:"tail_trim_ratio" mapstructure:"tail_trim_ratio"`

	// CentralEntity is the topic term whose prominence is measured. Empty
	// disables entity prominence analysis.
	CentralEntity string `yaml:"central_entity" mapstructure:"central_entity"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional findings summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "" = disabled
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      60 * time.Second,
			UserAgent:    "Pagelint/1.0 (+https://github.com/ppiankov/pagelint)",
			MaxBodyBytes: 3_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.pagelint/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Analyzer: AnalyzerConfig{
			MaxDocumentBytes: 3_000_000,
			HeadTrimRatio:    0.15,
			TailTrimRatio:    0.15,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
