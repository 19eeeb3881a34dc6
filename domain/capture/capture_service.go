package capture

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/soocke/vacation-cam-go/domain/task"
)

// Service turns the camera's callback-style capture into a single-shot task.
// Use NewService to construct an instance.
type Service interface {
	Capture(ctx context.Context, session Session, outputPath string) *task.Task[AssetRef]
	Stats() CaptureStats
}

type captureService struct {
	camera    Camera
	exec      Executor
	logger    *slog.Logger
	requested atomic.Uint64
	saved     atomic.Uint64
	failed    atomic.Uint64
	lastPath  atomic.Pointer[string]
}

// NewService wraps camera. Completion callbacks run on exec; a nil exec uses GoExecutor.
func NewService(logger *slog.Logger, camera Camera, exec Executor) Service {
	if exec == nil {
		exec = GoExecutor
	}
	return &captureService{camera: camera, exec: exec, logger: logger}
}

// Capture requests one picture written to outputPath. The task resolves with the
// saved asset or rejects with a *CaptureError. Ending ctx before the camera reports
// rejects the task with the context error; a file saved after that is removed.
func (s *captureService) Capture(ctx context.Context, session Session, outputPath string) *task.Task[AssetRef] {
	s.requested.Add(1)
	t := task.New[AssetRef]()
	if session == nil || !session.Active() {
		s.fail(t, outputPath, ErrSessionClosed)
		return t
	}
	s.camera.Capture(session, outputPath, s.exec, Callback{
		OnSaved: func(ref AssetRef) {
			if !t.Resolve(ref) {
				s.discard(ref)
				return
			}
			s.saved.Add(1)
			p := ref.Path()
			s.lastPath.Store(&p)
			if s.logger != nil {
				s.logger.Info("photo saved", "path", p, "session", session.ID())
			}
		},
		OnError: func(err error) { s.fail(t, outputPath, err) },
	})
	go func() {
		select {
		case <-ctx.Done():
			if t.Reject(ctx.Err()) && s.logger != nil {
				s.logger.Debug("capture abandoned", "path", outputPath, "error", ctx.Err())
			}
		case <-t.Done():
		}
	}()
	return t
}

// discard removes a picture whose task was already settled, so no file exists
// that never entered the photo collection.
func (s *captureService) discard(ref AssetRef) {
	err := os.Remove(ref.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		if s.logger != nil {
			s.logger.Warn("remove abandoned photo failed", "path", ref.Path(), "error", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Debug("abandoned photo removed", "path", ref.Path())
	}
}

func (s *captureService) fail(t *task.Task[AssetRef], path string, cause error) {
	if !t.Reject(newCaptureError(path, cause)) {
		return
	}
	s.failed.Add(1)
	if s.logger != nil {
		s.logger.Error("capture failed", "path", path, "error", cause)
	}
}

func (s *captureService) Stats() CaptureStats {
	st := CaptureStats{
		Requested: s.requested.Load(),
		Saved:     s.saved.Load(),
		Failed:    s.failed.Load(),
	}
	if p := s.lastPath.Load(); p != nil {
		st.LastPath = *p
	}
	return st
}
