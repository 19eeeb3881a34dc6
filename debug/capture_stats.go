package debug

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

// StatsSource reports capture counters.
type StatsSource interface{ Stats() capture.CaptureStats }

// StartCaptureStatsLogger logs capture counters every interval until ctx ends.
// Nothing is logged while the counters are unchanged.
func StartCaptureStatsLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, src StatsSource) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	var last capture.CaptureStats
	every(ctx, interval, func() {
		st := src.Stats()
		if st == last {
			return
		}
		last = st
		logger.Debug("capture.stats",
			"requested", st.Requested,
			"saved", st.Saved,
			"failed", st.Failed,
			"last_path", st.LastPath,
		)
	})
}
