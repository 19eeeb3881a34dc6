package presenter

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/location"
	"github.com/soocke/vacation-cam-go/domain/naming"
	"github.com/soocke/vacation-cam-go/domain/screen"
	"github.com/soocke/vacation-cam-go/domain/task"
)

// SessionSource hands out the bound camera session and guards against
// overlapping captures.
type SessionSource interface {
	Session() (capture.Session, bool)
	TryBegin() bool
	End()
}

// CaptureMachine is the part of the screen machine fed by captures.
type CaptureMachine interface {
	EventCaptureSucceeded(photo screen.CapturedPhoto)
	EventPhotoLocated(ref capture.AssetRef, loc location.Location)
}

// CapturePresenter turns the take-photo action into a capture and feeds the
// outcome to the screen machine. Failures are logged only.
type CapturePresenter struct {
	ctx     context.Context
	camera  SessionSource
	service capture.Service
	storage capture.Storage
	machine CaptureMachine
	locator location.Provider
	locate  atomic.Bool
	now     func() time.Time
	logger  *slog.Logger
}

// NewCapturePresenter wires the presenter. ctx bounds every capture it issues.
func NewCapturePresenter(ctx context.Context, logger *slog.Logger, camera SessionSource, service capture.Service, storage capture.Storage, machine CaptureMachine, locator location.Provider) *CapturePresenter {
	return &CapturePresenter{ctx: ctx, camera: camera, service: service, storage: storage, machine: machine, locator: locator, now: time.Now, logger: logger}
}

// EnableLocation starts locating every following photo. Called once location
// permission has been granted.
func (c *CapturePresenter) EnableLocation() {
	if c == nil {
		return
	}
	c.locate.Store(true)
}

// LocationEnabled reports whether photos are being located.
func (c *CapturePresenter) LocationEnabled() bool { return c != nil && c.locate.Load() }

// TakePhoto captures one photo into the pictures directory. It returns
// immediately; the task resolves once the machine has been told about the
// photo (and its location, when enabled and known).
func (c *CapturePresenter) TakePhoto() *task.Task[capture.AssetRef] {
	if c == nil || c.camera == nil || c.service == nil || c.storage == nil || c.machine == nil {
		return task.Failed[capture.AssetRef](capture.ErrSessionClosed)
	}
	session, ok := c.camera.Session()
	if !ok {
		c.debug("take photo ignored: no camera session")
		return task.Failed[capture.AssetRef](capture.ErrSessionClosed)
	}
	if !c.camera.TryBegin() {
		c.debug("take photo ignored: capture in flight")
		return task.Failed[capture.AssetRef](capture.ErrDeviceBusy)
	}
	dir, err := c.storage.PicturesDir()
	if err != nil {
		c.camera.End()
		if c.logger != nil {
			c.logger.Error("pictures dir unavailable", "error", err)
		}
		return task.Failed[capture.AssetRef](&capture.CaptureError{Cause: err})
	}
	takenAt := c.now()
	pending := c.service.Capture(c.ctx, session, naming.PicturePath(dir, takenAt))
	return task.Run(c.ctx, c.logger, func(ctx context.Context) (capture.AssetRef, error) {
		defer c.camera.End()
		ref, err := pending.Await(ctx)
		if err != nil {
			return "", err
		}
		c.machine.EventCaptureSucceeded(screen.CapturedPhoto{Ref: ref, CapturedAt: takenAt})
		if c.locate.Load() && c.locator != nil {
			c.locatePhoto(ctx, ref)
		}
		return ref, nil
	})
}

func (c *CapturePresenter) locatePhoto(ctx context.Context, ref capture.AssetRef) {
	loc, err := c.locator.Locate(ctx, ref)
	if err != nil {
		if c.logger != nil {
			if errors.Is(err, location.ErrNoLocation) {
				c.logger.Debug("photo has no location", "path", ref.Path())
			} else {
				c.logger.Warn("locate photo failed", "path", ref.Path(), "error", err)
			}
		}
		return
	}
	c.machine.EventPhotoLocated(ref, loc)
}

func (c *CapturePresenter) debug(msg string) {
	if c.logger != nil {
		c.logger.Debug(msg)
	}
}
