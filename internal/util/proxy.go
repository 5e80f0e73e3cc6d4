// Package util holds small helpers shared across the fetch layer.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the proxy selector for the HTTP transport. With no
// explicit proxy configured, the standard environment variables apply.
// Otherwise HTTPS requests prefer httpsProxy, everything else uses
// httpProxy, and requests matched by neither fall through to the
// environment.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
