package customHttpClient

import (
	"net"
	"net/http"
	"time"

	"github.com/akolanti/rfqflow/internal/config"
)

// New returns a client over a pooled transport shared by the llm providers.
// timeout caps the whole exchange; the caller's context may cut it shorter.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         newDialer().DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

func newDialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   config.LLMDialTimeout,
		KeepAlive: 30 * time.Second,
	}
}
