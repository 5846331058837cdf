package stores

import (
	"net/http"
	"time"
)

// NewHTTPClient 带超时和代理的 http client
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
	}
}
