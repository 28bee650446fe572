package keepalive

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/DFR0S7/CMR-Bot/internal/platform/logging"
)

// Pinger issues a GET against the bot's own public URL on an interval, so
// free-tier hosts that idle out inactive services keep the process warm.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *logging.Logger
}

func NewPinger(url string, interval time.Duration, logger *logging.Logger) *Pinger {
	if logger == nil {
		logger = logging.Default()
	}

	return &Pinger{
		url:      url,
		interval: interval,
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(nil),
		},
		logger:   logger,
	}
}

// Run pings until the context is canceled. Failures are logged and ignored;
// a missed ping only risks an idle-out, never correctness.
func (p *Pinger) Run(ctx context.Context) {
	if p.url == "" {
		p.logger.Info("self-ping disabled", "reason", "no url configured")
		return
	}

	p.logger.Info("self-ping enabled", "url", p.url, "interval", p.interval.String())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Debug("self-ping request build failed", "error", err)
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("self-ping failed", "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	p.logger.Debug("self-ping ok", "status", resp.StatusCode)
}
