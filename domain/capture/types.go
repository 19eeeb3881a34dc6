package capture

import (
	"context"
	"strings"
)

// AssetRef identifies a stored picture. It is an absolute filesystem path.
type AssetRef string

// Path returns the filesystem path of the asset.
func (r AssetRef) Path() string { return string(r) }

// URI returns the asset as a file URI.
func (r AssetRef) URI() string {
	p := strings.ReplaceAll(string(r), "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// Facing selects which camera lens a session binds.
type Facing int

const (
	FacingBack Facing = iota
	FacingFront
)

func (f Facing) String() string {
	switch f {
	case FacingBack:
		return "back"
	case FacingFront:
		return "front"
	default:
		return "unknown"
	}
}

// ParseFacing maps a config value to a Facing. Unknown values select the back camera.
func ParseFacing(s string) Facing {
	if strings.EqualFold(strings.TrimSpace(s), "front") {
		return FacingFront
	}
	return FacingBack
}

// Session is a bound, live camera handle. It becomes invalid when its lifecycle ends.
type Session interface {
	ID() string
	Facing() Facing
	Active() bool
}

// Executor runs capture completion callbacks.
type Executor interface {
	Execute(func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(func())

func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// GoExecutor runs each callback on a new goroutine.
var GoExecutor = ExecutorFunc(func(fn func()) { go fn() })

// Callback receives the outcome of a single capture. Exactly one method is invoked.
type Callback struct {
	OnSaved func(AssetRef)
	OnError func(error)
}

// Camera is the hardware collaborator. Capture returns immediately and reports
// completion through cb on exec.
type Camera interface {
	BindSession(lifecycle context.Context, facing Facing) (Session, error)
	Capture(session Session, outputPath string, exec Executor, cb Callback)
}

// Storage resolves where captured pictures are written.
type Storage interface {
	PicturesDir() (string, error)
}

// CaptureStats summarizes capture service activity.
type CaptureStats struct {
	Requested uint64
	Saved     uint64
	Failed    uint64
	LastPath  string
}
