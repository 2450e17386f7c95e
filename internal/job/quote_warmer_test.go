package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"signal-desk/internal/domain"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type stubRefresher struct {
	mu      sync.Mutex
	symbols []string
	fail    map[string]bool
}

func (s *stubRefresher) Refresh(ctx context.Context, inst domain.Instrument) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = append(s.symbols, inst.Symbol)
	if s.fail[inst.Symbol] {
		return 0, errors.New("upstream down")
	}
	return 100, nil
}

func (s *stubRefresher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.symbols)
}

func TestQuoteWarmerWarmAll(t *testing.T) {
	stub := &stubRefresher{fail: map[string]bool{"EURUSD": true}}
	w := NewQuoteWarmer(trace.NewNoopTracerProvider().Tracer("test"), stub, "@every 1h", zerolog.Nop())

	got := w.WarmAll(context.Background())
	if got != len(domain.Instruments)-1 {
		t.Fatalf("expected %d successful refreshes, got %d", len(domain.Instruments)-1, got)
	}
	if stub.count() != len(domain.Instruments) {
		t.Fatalf("expected every instrument refreshed, got %v", stub.symbols)
	}
}

func TestQuoteWarmerStartWarmsImmediately(t *testing.T) {
	stub := &stubRefresher{}
	w := NewQuoteWarmer(trace.NewNoopTracerProvider().Tracer("test"), stub, "@every 1h", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	eventually(t, func() bool { return stub.count() >= len(domain.Instruments) })
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("warmer did not stop")
	}
	if w.Runs() < 1 {
		t.Fatalf("expected at least one warm pass")
	}
}

func TestQuoteWarmerRejectsBadSpec(t *testing.T) {
	w := NewQuoteWarmer(trace.NewNoopTracerProvider().Tracer("test"), &stubRefresher{}, "every now and then", zerolog.Nop())
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected schedule parse error")
	}
}

func TestQuoteWarmerDisabled(t *testing.T) {
	stub := &stubRefresher{}
	w := NewQuoteWarmer(trace.NewNoopTracerProvider().Tracer("test"), stub, "", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.count() != 0 {
		t.Fatalf("disabled warmer should not refresh")
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}
