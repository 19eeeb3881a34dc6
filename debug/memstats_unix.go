//go:build unix

package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs peak resident set size along with Go heap stats to correlate native vs heap growth.

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// StartMemLogger logs memory stats every interval until ctx ends.
// It is best-effort; failures to query RSS are logged once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	var rssErrLogged bool
	every(ctx, interval, func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		var ru unix.Rusage
		rss := uint64(0)
		if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
			rss = maxRSSBytes(ru.Maxrss)
		} else if !rssErrLogged {
			logger.Warn("memlog: getrusage failed", slog.String("err", err.Error()))
			rssErrLogged = true
		}
		logger.Info("memstats",
			slog.Int("goroutines", runtime.NumGoroutine()),
			slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
			slog.String("heap_inuse", humanize.IBytes(ms.HeapInuse)),
			slog.String("heap_sys", humanize.IBytes(ms.HeapSys)),
			slog.Uint64("num_gc", uint64(ms.NumGC)),
			slog.String("max_rss", humanize.IBytes(rss)),
		)
	})
}

// maxRSSBytes converts ru_maxrss, reported in bytes on darwin and KiB elsewhere.
func maxRSSBytes(v int64) uint64 {
	if v < 0 {
		return 0
	}
	if runtime.GOOS == "darwin" {
		return uint64(v)
	}
	return uint64(v) * 1024
}
