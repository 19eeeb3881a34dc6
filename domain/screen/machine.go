package screen

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/location"
)

// Machine owns the screen state and photo collection. All mutations happen on
// its event loop goroutine; readers get copies through Snapshot.
type Machine struct {
	state         Snapshot
	published     atomic.Pointer[Snapshot]
	logger        *slog.Logger
	returnVisible bool
	listeners     []Listener
	events        chan interface{}
	quit          chan struct{}
	closeOnce     sync.Once
}

// Option configures a Machine.
type Option func(*Machine)

// WithReturnAffordance sets whether the thumbnail screen initially shows its return button.
func WithReturnAffordance(visible bool) Option {
	return func(m *Machine) { m.returnVisible = visible }
}

// NewMachine constructs the machine in CapturePhoto and starts its event loop.
func NewMachine(logger *slog.Logger, opts ...Option) *Machine {
	m := &Machine{
		logger: logger,
		events: make(chan interface{}, 64),
		quit:   make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	m.state = Snapshot{Screen: CapturePhoto, ReturnVisible: m.returnVisible}
	m.publish()
	go m.loop()
	return m
}

// events
type (
	evtCaptureSucceeded struct{ photo CapturedPhoto }
	evtRequestMap       struct{}
	evtBack             struct{}
	evtPhotoLocated     struct {
		ref capture.AssetRef
		loc location.Location
	}
	evtReset       struct{}
	evtAddListener struct{ l Listener }
	evtSync        struct{ done chan struct{} }
)

func (m *Machine) loop() {
	for {
		select {
		case <-m.quit:
			return
		case ev := <-m.events:
			select {
			case <-m.quit:
				return
			default:
			}
			m.handle(ev)
		}
	}
}

func (m *Machine) handle(ev interface{}) {
	defer func() {
		if r := recover(); r != nil && m.logger != nil {
			m.logger.Error("screen machine panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	next := m.state.clone()
	switch e := ev.(type) {
	case evtAddListener:
		m.listeners = append(m.listeners, e.l)
		return
	case evtSync:
		close(e.done)
		return
	case evtCaptureSucceeded:
		next.Photos = append(next.Photos, e.photo)
		if m.state.Screen == CapturePhoto {
			next.Screen = PhotoThumbnail
			next.ReturnVisible = m.returnVisible
		}
	case evtRequestMap:
		switch m.state.Screen {
		case CapturePhoto, PhotoThumbnail:
			next.Screen = Location
		default:
			return
		}
	case evtBack:
		switch m.state.Screen {
		case Location:
			next.Screen = PhotoThumbnail
		case PhotoThumbnail:
			if !m.state.ReturnVisible {
				return
			}
			next.ReturnVisible = false
		default:
			return
		}
	case evtPhotoLocated:
		if !hasPhoto(m.state.Photos, e.ref) {
			return
		}
		loc := e.loc
		next.PhotoLocation = &loc
	case evtReset:
		next = Snapshot{Screen: CapturePhoto, ReturnVisible: m.returnVisible}
	default:
		return
	}
	m.apply(next)
}

func hasPhoto(photos []CapturedPhoto, ref capture.AssetRef) bool {
	for _, p := range photos {
		if p.Ref == ref {
			return true
		}
	}
	return false
}

func (m *Machine) apply(next Snapshot) {
	prev := m.state
	m.state = next
	m.publish()
	if prev.Screen != next.Screen && m.logger != nil {
		m.logger.Debug("screen transition", "from", prev.Screen.String(), "to", next.Screen.String(), "photos", len(next.Photos))
	}
	for _, l := range m.listeners {
		l(prev.clone(), next.clone())
	}
}

func (m *Machine) publish() {
	s := m.state.clone()
	m.published.Store(&s)
}

func (m *Machine) send(ev interface{}) {
	select {
	case <-m.quit:
		return
	default:
	}
	select {
	case <-m.quit:
	case m.events <- ev:
	}
}

func (m *Machine) EventCaptureSucceeded(photo CapturedPhoto) {
	m.send(evtCaptureSucceeded{photo: photo})
}
func (m *Machine) EventRequestMap() { m.send(evtRequestMap{}) }
func (m *Machine) EventBack()       { m.send(evtBack{}) }
func (m *Machine) EventPhotoLocated(ref capture.AssetRef, loc location.Location) {
	m.send(evtPhotoLocated{ref: ref, loc: loc})
}

// Reset clears the session and returns to CapturePhoto.
func (m *Machine) Reset()                 { m.send(evtReset{}) }
func (m *Machine) AddListener(l Listener) { m.send(evtAddListener{l: l}) }

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot { return m.published.Load().clone() }

// Current returns the active screen.
func (m *Machine) Current() Screen { return m.published.Load().Screen }

// sync blocks until every previously sent event has been handled.
func (m *Machine) sync() {
	done := make(chan struct{})
	m.send(evtSync{done: done})
	select {
	case <-done:
	case <-m.quit:
	}
}

// Close stops the event loop. Later events are dropped.
func (m *Machine) Close() {
	m.closeOnce.Do(func() { close(m.quit) })
}

var _ Contract = (*Machine)(nil)
