package keepalive

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func TestNewPinger_TracesOutboundRequests(t *testing.T) {
	t.Parallel()

	p := NewPinger("http://example.invalid/healthz", time.Minute, nil)
	if _, ok := p.client.Transport.(*otelhttp.Transport); !ok {
		t.Fatalf("expected instrumented transport, got %T", p.client.Transport)
	}
}

func TestRun_DisabledWithoutURL(t *testing.T) {
	t.Parallel()

	p := NewPinger("", time.Minute, nil)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for an unconfigured pinger")
	}
}
