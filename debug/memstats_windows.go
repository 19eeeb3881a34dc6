//go:build windows

package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs the working set along with Go heap stats to correlate native vs heap growth.

import (
	"context"
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/windows"
)

// processMemoryCounters matches PROCESS_MEMORY_COUNTERS from psapi.
type processMemoryCounters struct {
	cb                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
}

var (
	modPsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procGetProcessMemoryInfo = modPsapi.NewProc("GetProcessMemoryInfo")
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
		rss := uint64(0)
		pmc := processMemoryCounters{cb: uint32(unsafe.Sizeof(processMemoryCounters{}))}
		r1, _, err := procGetProcessMemoryInfo.Call(uintptr(windows.CurrentProcess()), uintptr(unsafe.Pointer(&pmc)), uintptr(pmc.cb))
		if r1 != 0 {
			rss = uint64(pmc.WorkingSetSize)
		} else if !rssErrLogged {
			logger.Warn("memlog: GetProcessMemoryInfo call failed", slog.String("err", err.Error()))
			rssErrLogged = true
		}
		logger.Info("memstats",
			slog.Int("goroutines", runtime.NumGoroutine()),
			slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
			slog.String("heap_inuse", humanize.IBytes(ms.HeapInuse)),
			slog.String("heap_sys", humanize.IBytes(ms.HeapSys)),
			slog.Uint64("num_gc", uint64(ms.NumGC)),
			slog.String("working_set", humanize.IBytes(rss)),
		)
	})
}
