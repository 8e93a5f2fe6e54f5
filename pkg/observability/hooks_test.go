package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnParseComplete(ctx, "regex", 3, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 10)
	HTTP().OnError(ctx, "POST", "/api/render", nil)
}

func TestSetters(t *testing.T) {
	p, c, h := &testPipelineHooks{}, &testCacheHooks{}, &testHTTPHooks{}

	tests := []struct {
		name  string
		set   func()
		check func() bool
	}{
		{"pipeline", func() { SetPipelineHooks(p) }, func() bool { return Pipeline() == PipelineHooks(p) }},
		{"cache", func() { SetCacheHooks(c) }, func() bool { return Cache() == CacheHooks(c) }},
		{"http", func() { SetHTTPHooks(h) }, func() bool { return HTTP() == HTTPHooks(h) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			tt.set()
			if !tt.check() {
				t.Error("hooks not installed")
			}
		})
	}
}

func TestSettersKeepOtherCategories(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	p := &testPipelineHooks{}
	c := &testCacheHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(p) {
		t.Error("SetPipelineHooks(nil) replaced the pipeline hooks")
	}
	if Cache() != CacheHooks(c) {
		t.Error("SetPipelineHooks dropped the cache hooks")
	}
}

func TestSetFillsMissingCategories(t *testing.T) {
	t.Cleanup(Reset)

	h := &testHTTPHooks{}
	Set(Hooks{HTTP: h})

	if HTTP() != HTTPHooks(h) {
		t.Error("Set did not install HTTP hooks")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	SetLogHooks(h)

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, "mindmap", 7)
	Cache().OnCacheMiss(ctx, "artifact")
	HTTP().OnResponse(ctx, "GET", "/health", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"layout start", "nodes=7", "cache miss", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogHooksNilLogger(t *testing.T) {
	h := NewLogHooks(nil)
	h.OnParseStart(context.Background(), "regex", 1)
	h.OnError(context.Background(), "GET", "/", nil)
}
