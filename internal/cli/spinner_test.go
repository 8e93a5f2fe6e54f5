package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func animatedSpinner(ctx context.Context, w *syncBuffer, msg string) *Spinner {
	s := newSpinnerTo(ctx, w, msg)
	s.animate = true
	return s
}

func TestSpinnerDraws(t *testing.T) {
	var w syncBuffer
	s := animatedSpinner(context.Background(), &w, "Rendering mind map...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := w.String()
	if !strings.Contains(out, "Rendering mind map...") {
		t.Errorf("spinner output %q does not contain the message", out)
	}
	if s.ctx.Err() == nil {
		t.Error("Stop cancels the spinner context")
	}
}

func TestSpinnerQuietWithoutTerminal(t *testing.T) {
	var w syncBuffer
	s := newSpinnerTo(context.Background(), &w, "quiet")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	if out := w.String(); out != "" {
		t.Errorf("non-terminal spinner wrote %q", out)
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var w syncBuffer
			s := animatedSpinner(ctx, &w, "waiting")
			s.Start()
			time.Sleep(100 * time.Millisecond)

			if s.ctx.Err() == nil {
				t.Error("spinner should be cancelled with its context")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	for _, animate := range []bool{true, false} {
		var w syncBuffer
		s := newSpinnerTo(context.Background(), &w, "stop")
		s.animate = animate
		s.Start()
		s.Stop()
		s.Stop()
		s.Stop()
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	var out bytes.Buffer
	old := stdout
	stdout = &out
	t.Cleanup(func() { stdout = old })

	s := newSpinnerWithContext(context.Background(), "working")
	s.Start()
	s.StopWithError("Render failed")

	if got := out.String(); !strings.Contains(got, "Render failed") {
		t.Errorf("output = %q", got)
	}
}
