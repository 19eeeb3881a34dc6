package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/vova616/screenshot"
)

// jpegQuality is the encoder quality for stored pictures.
const jpegQuality = 90

// GrabFunc returns one frame from the image source.
type GrabFunc func() (*image.RGBA, error)

// Grab returns a capture of the primary screen.
func Grab() (*image.RGBA, error) {
	return screenshot.CaptureScreen()
}

type screenSession struct {
	id     string
	facing Facing
	ctx    context.Context
	busy   atomic.Bool
}

func (s *screenSession) ID() string     { return s.id }
func (s *screenSession) Facing() Facing { return s.facing }
func (s *screenSession) Active() bool   { return s.ctx.Err() == nil }

// ScreenCamera is a Camera whose lens is the desktop. Front-facing sessions
// produce mirrored pictures the way a selfie camera does.
type ScreenCamera struct {
	grab   GrabFunc
	logger *slog.Logger
}

// NewScreenCamera returns a camera reading frames from grab. A nil grab captures the screen.
func NewScreenCamera(logger *slog.Logger, grab GrabFunc) *ScreenCamera {
	if grab == nil {
		grab = Grab
	}
	return &ScreenCamera{grab: grab, logger: logger}
}

// BindSession binds a session to lifecycle. The session stops accepting
// captures once lifecycle is done.
func (c *ScreenCamera) BindSession(lifecycle context.Context, facing Facing) (Session, error) {
	if err := lifecycle.Err(); err != nil {
		return nil, fmt.Errorf("bind %s camera: %w", facing, ErrSessionClosed)
	}
	s := &screenSession{id: uuid.NewString(), facing: facing, ctx: lifecycle}
	if c.logger != nil {
		c.logger.Info("camera bound", "session", s.id, "facing", facing.String())
	}
	return s, nil
}

// Capture grabs a frame and stores it as JPEG at outputPath. It returns
// immediately; exactly one of cb.OnSaved or cb.OnError runs on exec.
func (c *ScreenCamera) Capture(session Session, outputPath string, exec Executor, cb Callback) {
	report := func(err error) {
		exec.Execute(func() {
			if cb.OnError != nil {
				cb.OnError(&CaptureError{Path: outputPath, Cause: err})
			}
		})
	}
	s, ok := session.(*screenSession)
	if !ok || !s.Active() {
		report(ErrSessionClosed)
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		report(ErrDeviceBusy)
		return
	}
	go func() {
		defer s.busy.Store(false)
		size, err := c.store(s, outputPath)
		if err != nil {
			report(err)
			return
		}
		if c.logger != nil {
			c.logger.Debug("frame stored", "path", outputPath, "size", humanize.Bytes(uint64(size)))
		}
		exec.Execute(func() {
			if cb.OnSaved != nil {
				cb.OnSaved(AssetRef(outputPath))
			}
		})
	}()
}

func (c *ScreenCamera) store(s *screenSession, outputPath string) (int64, error) {
	frame, err := c.grab()
	if err != nil {
		return 0, fmt.Errorf("grab frame: %w", err)
	}
	if frame == nil {
		return 0, fmt.Errorf("grab frame: empty image")
	}
	if !s.Active() {
		return 0, ErrSessionClosed
	}
	var img image.Image = frame
	if s.facing == FacingFront {
		img = imaging.FlipH(frame)
	}
	dir := filepath.Dir(outputPath)
	if err := CheckWritable(dir); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, ".capture-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())
	if err := imaging.Encode(tmp, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("encode jpeg: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return 0, err
	}
	return info.Size(), nil
}
