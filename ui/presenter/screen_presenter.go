package presenter

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/soocke/vacation-cam-go/domain/location"
	"github.com/soocke/vacation-cam-go/domain/screen"
)

// Controls describes which action buttons the root view shows.
type Controls struct {
	Capture      bool // take photo enabled
	ViewLocation bool
	Back         bool
	BackLabel    string
}

// ScreenView is the part of the root view driven by the screen presenter.
type ScreenView interface {
	SetTitle(string)
	SetContent(image.Image) // nil clears
	SetControls(Controls)
}

// ReadyModel reports the camera state. Bound is true while a session granted by
// camera permission is active; Ready additionally requires no capture in flight.
type ReadyModel interface {
	Bound() bool
	Ready() bool
}

// ThumbnailRenderer draws the captured photos.
type ThumbnailRenderer interface {
	Render(photos []screen.CapturedPhoto) image.Image
}

// LocationRenderer draws the map for an optional photo location.
type LocationRenderer interface {
	Render(loc *location.Location) image.Image
}

// ScreenPresenter receives machine snapshots and pending state changes, and
// renders the active screen on Tick. Every new snapshot redraws the screen.
type ScreenPresenter struct {
	view    ScreenView
	camera  ReadyModel
	thumbs  ThumbnailRenderer
	maps    LocationRenderer
	preview *PreviewPresenter

	mu       sync.Mutex
	pending  []screen.Snapshot
	current  screen.Snapshot
	controls Controls
	shown    bool // controls pushed at least once
	rendered bool
}

func NewScreenPresenter(view ScreenView, camera ReadyModel, thumbs ThumbnailRenderer, maps LocationRenderer, preview *PreviewPresenter) *ScreenPresenter {
	return &ScreenPresenter{view: view, camera: camera, thumbs: thumbs, maps: maps, preview: preview}
}

// OnSnapshot queues a snapshot from the machine listener.
//
// The latest queued snapshot will be rendered on the next Tick.
func (p *ScreenPresenter) OnSnapshot(prev, next screen.Snapshot) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick renders the most recent queued snapshot, refreshes the viewfinder on the
// capture screen and keeps the controls in sync with camera readiness.
func (p *ScreenPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	var next *screen.Snapshot
	if n := len(p.pending); n > 0 {
		last := p.pending[n-1]
		next = &last
		p.pending = p.pending[:0]
	}
	p.mu.Unlock()

	if next != nil {
		p.current = *next
		p.render(p.current)
		p.rendered = true
	}
	if !p.rendered {
		return
	}
	// No session means no camera: the viewfinder stays empty.
	if p.current.Screen == screen.CapturePhoto && p.preview != nil && p.cameraBound() {
		if frame, ok := p.preview.Frame(now); ok {
			p.view.SetContent(frame)
		}
	}
	p.pushControls(ControlsFor(p.current, p.cameraReady()))
}

func (p *ScreenPresenter) render(s screen.Snapshot) {
	switch s.Screen {
	case screen.CapturePhoto:
		p.view.SetTitle("Take a photo")
		p.view.SetContent(nil)
		if p.preview != nil {
			p.preview.Invalidate()
		}
	case screen.PhotoThumbnail:
		p.view.SetTitle(english.Plural(len(s.Photos), "photo", "photos"))
		var img image.Image
		if p.thumbs != nil {
			img = p.thumbs.Render(s.Photos)
		}
		p.view.SetContent(img)
	case screen.Location:
		if s.PhotoLocation != nil {
			p.view.SetTitle(fmt.Sprintf("Photo location %s", s.PhotoLocation))
		} else {
			p.view.SetTitle("Photo location unknown")
		}
		var img image.Image
		if p.maps != nil {
			img = p.maps.Render(s.PhotoLocation)
		}
		p.view.SetContent(img)
	default:
		panic(fmt.Sprintf("unhandled screen %v", s.Screen))
	}
}

// ControlsFor returns the buttons shown for s.
func ControlsFor(s screen.Snapshot, cameraReady bool) Controls {
	switch s.Screen {
	case screen.CapturePhoto:
		return Controls{Capture: cameraReady, ViewLocation: true}
	case screen.PhotoThumbnail:
		return Controls{ViewLocation: true, Back: s.ReturnVisible, BackLabel: "Return"}
	case screen.Location:
		return Controls{Back: true, BackLabel: "Back"}
	default:
		panic(fmt.Sprintf("unhandled screen %v", s.Screen))
	}
}

func (p *ScreenPresenter) cameraBound() bool {
	return p.camera != nil && p.camera.Bound()
}

func (p *ScreenPresenter) cameraReady() bool {
	return p.camera != nil && p.camera.Ready()
}

func (p *ScreenPresenter) pushControls(c Controls) {
	if p.shown && c == p.controls {
		return
	}
	p.controls, p.shown = c, true
	p.view.SetControls(c)
}

// Prime queues s so the first Tick renders the initial screen.
func (p *ScreenPresenter) Prime(s screen.Snapshot) { p.OnSnapshot(screen.Snapshot{}, s) }
