package util

import (
	"net/http"
	"net/url"
	"testing"
)

func requestFor(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func proxyHost(t *testing.T, proxy *url.URL) string {
	t.Helper()
	if proxy == nil {
		return ""
	}
	return proxy.Host
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://plain:3128", "http://secure:3128", "")

	proxy, err := fn(requestFor(t, "https://example.com/"))
	if err != nil {
		t.Fatalf("https request: %v", err)
	}
	if got := proxyHost(t, proxy); got != "secure:3128" {
		t.Errorf("https proxy = %q, want secure:3128", got)
	}

	proxy, err = fn(requestFor(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	if got := proxyHost(t, proxy); got != "plain:3128" {
		t.Errorf("http proxy = %q, want plain:3128", got)
	}
}

func TestNewProxyFunc_HTTPFallbackForHTTPS(t *testing.T) {
	// Only an HTTP proxy configured: HTTPS traffic uses it too.
	fn := NewProxyFunc("http://plain:3128", "", "")

	proxy, err := fn(requestFor(t, "https://example.com/"))
	if err != nil {
		t.Fatalf("https request: %v", err)
	}
	if got := proxyHost(t, proxy); got != "plain:3128" {
		t.Errorf("https proxy = %q, want plain:3128", got)
	}
}

func TestNewProxyFunc_NoConfigUsesEnvironment(t *testing.T) {
	fn := NewProxyFunc("", "", "")

	// Without proxy env vars set, the environment selector yields nil.
	t.Setenv("HTTP_PROXY", "")
	t.Setenv("HTTPS_PROXY", "")

	proxy, err := fn(requestFor(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("env request: %v", err)
	}
	if proxy != nil {
		t.Errorf("expected nil proxy without configuration, got %v", proxy)
	}
}
