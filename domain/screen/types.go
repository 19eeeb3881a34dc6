package screen

import (
	"time"

	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/location"
)

// Screen enumerates the mutually exclusive UI states.
type Screen int

const (
	CapturePhoto Screen = iota
	PhotoThumbnail
	Location
)

func (s Screen) String() string {
	switch s {
	case CapturePhoto:
		return "capture_photo"
	case PhotoThumbnail:
		return "photo_thumbnail"
	case Location:
		return "location"
	default:
		return "unknown"
	}
}

// CapturedPhoto is a stored picture that entered the session after a successful capture.
type CapturedPhoto struct {
	Ref        capture.AssetRef
	CapturedAt time.Time
}

// Snapshot is an immutable view of the application state.
type Snapshot struct {
	Screen Screen
	Photos []CapturedPhoto
	// PhotoLocation is where the most recently located photo was taken, if known.
	PhotoLocation *location.Location
	// ReturnVisible reports whether the thumbnail screen shows its return button.
	ReturnVisible bool
}

// Latest returns the most recent photo.
func (s Snapshot) Latest() (CapturedPhoto, bool) {
	if len(s.Photos) == 0 {
		return CapturedPhoto{}, false
	}
	return s.Photos[len(s.Photos)-1], true
}

func (s Snapshot) clone() Snapshot {
	c := s
	c.Photos = append([]CapturedPhoto(nil), s.Photos...)
	if s.PhotoLocation != nil {
		loc := *s.PhotoLocation
		c.PhotoLocation = &loc
	}
	return c
}

// Listener is called from the machine goroutine after every state change.
type Listener func(prev, next Snapshot)

// Contract is the surface presenters and the controller depend on.
type Contract interface {
	EventCaptureSucceeded(photo CapturedPhoto)
	EventRequestMap()
	EventBack()
	EventPhotoLocated(ref capture.AssetRef, loc location.Location)
	Reset()
	Snapshot() Snapshot
	AddListener(l Listener)
}
