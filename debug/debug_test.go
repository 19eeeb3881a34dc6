package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

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

type countingStats struct{ n atomic.Uint64 }

func (s *countingStats) Stats() capture.CaptureStats {
	return capture.CaptureStats{Requested: s.n.Load()}
}

func TestCaptureStatsLogger_LogsChangesOnly(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	src := &countingStats{}
	src.n.Store(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartCaptureStatsLogger(ctx, 5*time.Millisecond, logger, src)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && !strings.Contains(out.String(), "capture.stats") {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(30 * time.Millisecond)
	if n := strings.Count(out.String(), "capture.stats"); n != 1 {
		t.Fatalf("expected one log line for unchanged stats, got %d", n)
	}
}

func TestEveryStopsWithContext(t *testing.T) {
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	every(ctx, time.Millisecond, func() { n.Add(1) })
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)
	seen := n.Load()
	time.Sleep(20 * time.Millisecond)
	if n.Load() != seen {
		t.Fatalf("ticker kept running after cancel")
	}
}
