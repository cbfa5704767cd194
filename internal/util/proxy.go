package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a proxy selector for outbound HTTP clients.
// Explicit settings win; otherwise the standard environment variables
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) apply.
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
