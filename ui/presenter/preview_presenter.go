package presenter

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/vacation-cam-go/ui/images"
)

// FrameGrabber returns one frame from the camera's image source.
type FrameGrabber func() (*image.RGBA, error)

type previewFrame struct {
	img image.Image
	seq uint64
}

// PreviewPresenter produces throttled, display-sized viewfinder frames. Grabs
// run on a background goroutine so Frame never blocks the UI thread.
type PreviewPresenter struct {
	grab     FrameGrabber
	interval time.Duration
	maxW     int
	maxH     int
	mirror   bool
	logger   *slog.Logger

	inFlight atomic.Bool
	latest   atomic.Pointer[previewFrame]
	seq      atomic.Uint64
	shown    uint64
	lastGrab time.Time
	failing  atomic.Bool
}

// NewPreviewPresenter returns a presenter grabbing at most once per interval.
// mirror flips frames horizontally, as a front camera viewfinder does.
func NewPreviewPresenter(logger *slog.Logger, grab FrameGrabber, interval time.Duration, maxW, maxH int, mirror bool) *PreviewPresenter {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &PreviewPresenter{grab: grab, interval: interval, maxW: maxW, maxH: maxH, mirror: mirror, logger: logger}
}

// Frame starts a grab when the interval has elapsed and returns the newest
// finished frame not yet returned.
func (p *PreviewPresenter) Frame(now time.Time) (image.Image, bool) {
	if p == nil || p.grab == nil {
		return nil, false
	}
	if now.Sub(p.lastGrab) >= p.interval && p.inFlight.CompareAndSwap(false, true) {
		p.lastGrab = now
		go p.fetch()
	}
	f := p.latest.Load()
	if f == nil || f.seq == p.shown {
		return nil, false
	}
	p.shown = f.seq
	return f.img, true
}

// Invalidate makes the next finished frame visible even if it was returned before.
func (p *PreviewPresenter) Invalidate() {
	if p == nil {
		return
	}
	p.shown = 0
}

func (p *PreviewPresenter) fetch() {
	defer p.inFlight.Store(false)
	frame, err := p.grab()
	if err != nil || frame == nil {
		if p.failing.CompareAndSwap(false, true) && p.logger != nil {
			p.logger.Warn("preview frame unavailable", "error", err)
		}
		return
	}
	p.failing.Store(false)
	var img image.Image = frame
	if p.mirror {
		img = imaging.FlipH(img)
	}
	img = images.ScaleToFit(img, p.maxW, p.maxH)
	p.latest.Store(&previewFrame{img: img, seq: p.seq.Add(1)})
}
