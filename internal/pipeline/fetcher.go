package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/pagelint/internal/model"
	"github.com/ppiankov/pagelint/internal/util"
)

// fetchSleepFunc is replaced in tests to skip retry backoff.
var fetchSleepFunc = time.Sleep

// Fetcher retrieves page bodies, robots.txt and sitemaps over HTTP.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a Fetcher. insecureTLS skips certificate verification;
// empty proxy settings fall back to the environment.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// FetchResult contains a fetched body and its HTTP metadata.
type FetchResult struct {
	HTML     string
	Meta     model.FetchMeta
	FinalURL string
}

// Fetch retrieves the body at rawURL. Non-2xx statuses are errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:     string(body),
		Meta:     meta,
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// FetchWithRetry retries transient failures (5xx, 429, connection errors)
// up to three attempts with backoff.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(attempt) * 2 * time.Second)
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// FetchOptional retrieves a supporting resource like robots.txt or a
// sitemap. A 404 means the resource does not exist and is not an error.
func (f *Fetcher) FetchOptional(ctx context.Context, rawURL string) (string, bool, error) {
	result, err := f.Fetch(ctx, rawURL)
	if err != nil {
		if strings.Contains(err.Error(), "unexpected status: 404") {
			return "", false, nil
		}
		return "", false, err
	}
	return result.HTML, true, nil
}

// isRetryableFetchError reports whether a fetch failure is worth retrying.
func isRetryableFetchError(err error) bool {
	msg := err.Error()

	for _, code := range []string{"500", "502", "503", "504", "429"} {
		if strings.Contains(msg, "unexpected status: "+code) {
			return true
		}
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return true
	}
	return false
}
