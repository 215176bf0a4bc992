// Package httpprobe implements probe.HTTPProber with a HEAD request over
// HTTPS, falling back to plain HTTP.
package httpprobe

import (
	"context"
	"net/http"
	"time"

	"domainstatus/pkg/logger"
	"domainstatus/pkg/probe"

	"go.uber.org/zap"
)

// UserAgent is sent with every request so trivial bot filters let the probe through.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// schemes is the fallback chain, tried in order until one attempt gets a response.
var schemes = []string{"https", "http"} //nolint: gochecknoglobals

// Prober issues HEAD requests through a shared http.Client. It is safe for concurrent use.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a Prober. The client is shared by all callers and must not carry
// per-call state; redirects are followed according to the client's policy.
// Each scheme attempt is bounded by timeout.
func New(client *http.Client, timeout time.Duration) *Prober {
	return &Prober{client: client, timeout: timeout}
}

// NewClient returns the http.Client used in production: default transport,
// default redirect policy.
func NewClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
}

// Reachability returns the status code of the first scheme that answers, or 0.
// Any failure of the HTTPS attempt (TLS, connection, timeout) moves on to HTTP.
func (p *Prober) Reachability(ctx context.Context, name string) int {
	if name == "" {
		return 0
	}

	for _, scheme := range schemes {
		code, err := p.head(ctx, scheme+"://"+name)
		if err == nil {
			return code
		}
		logger.Debug(ctx, "http attempt failed", zap.String("scheme", scheme), zap.Error(err))
	}

	return 0
}

func (p *Prober) head(ctx context.Context, url string) (int, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err //nolint: wrapcheck
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err //nolint: wrapcheck
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode, nil
}

var _ probe.HTTPProber = (*Prober)(nil)
