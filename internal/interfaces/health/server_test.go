package health

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

func performRequest(t *testing.T, s *Server, path string) *fasthttp.RequestCtx {
	t.Helper()

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(path)
	s.handle(ctx)
	return ctx
}

func TestServer_Root(t *testing.T) {
	t.Parallel()

	s := NewServer(":0", "cmr-bot", "test", nil)
	ctx := performRequest(t, s, "/")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if got := string(ctx.Response.Body()); got != "OK" {
		t.Fatalf("body = %q", got)
	}
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	s := NewServer(":0", "cmr-bot", "1.2.3", nil)
	ctx := performRequest(t, s, "/healthz")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}

	var payload map[string]string
	if err := sonic.Unmarshal(ctx.Response.Body(), &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload["status"] != "ok" || payload["service"] != "cmr-bot" || payload["version"] != "1.2.3" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestServer_NotFound(t *testing.T) {
	t.Parallel()

	s := NewServer(":0", "cmr-bot", "test", nil)
	ctx := performRequest(t, s, "/nope")

	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
}
