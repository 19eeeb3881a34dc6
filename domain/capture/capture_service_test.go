package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ active bool }

func (s *fakeSession) ID() string     { return "fake" }
func (s *fakeSession) Facing() Facing { return FacingBack }
func (s *fakeSession) Active() bool   { return s.active }

// fakeCamera reports err when set, otherwise saves. hold defers the callback until closed.
type fakeCamera struct {
	err  error
	hold chan struct{}
}

func (c *fakeCamera) BindSession(context.Context, Facing) (Session, error) {
	return &fakeSession{active: true}, nil
}

func (c *fakeCamera) Capture(_ Session, path string, exec Executor, cb Callback) {
	go func() {
		if c.hold != nil {
			<-c.hold
		}
		exec.Execute(func() {
			if c.err != nil {
				cb.OnError(c.err)
				return
			}
			cb.OnSaved(AssetRef(path))
		})
	}()
}

func await(t *testing.T, svc Service, ctx context.Context, s Session, path string) (AssetRef, error) {
	t.Helper()
	wait, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return svc.Capture(ctx, s, path).Await(wait)
}

func TestServiceResolves(t *testing.T) {
	svc := NewService(nil, &fakeCamera{}, nil)
	ref, err := await(t, svc, context.Background(), &fakeSession{active: true}, "/p/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, AssetRef("/p/a.jpg"), ref)

	st := svc.Stats()
	assert.Equal(t, uint64(1), st.Requested)
	assert.Equal(t, uint64(1), st.Saved)
	assert.Equal(t, uint64(0), st.Failed)
	assert.Equal(t, "/p/a.jpg", st.LastPath)
}

func TestServiceWrapsCameraError(t *testing.T) {
	boom := errors.New("sensor fault")
	svc := NewService(nil, &fakeCamera{err: boom}, nil)
	_, err := await(t, svc, context.Background(), &fakeSession{active: true}, "/p/b.jpg")
	require.Error(t, err)
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "/p/b.jpg", ce.Path)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), svc.Stats().Failed)
}

func TestServiceInactiveSession(t *testing.T) {
	svc := NewService(nil, &fakeCamera{}, nil)
	_, err := await(t, svc, context.Background(), &fakeSession{active: false}, "/p/c.jpg")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = await(t, svc, context.Background(), nil, "/p/c.jpg")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestServiceContextCancelDropsLateResult(t *testing.T) {
	hold := make(chan struct{})
	svc := NewService(nil, &fakeCamera{hold: hold}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	tk := svc.Capture(ctx, &fakeSession{active: true}, "/p/d.jpg")
	cancel()

	wait, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	_, err := tk.Await(wait)
	assert.ErrorIs(t, err, context.Canceled)

	close(hold)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, uint64(0), svc.Stats().Saved)
}

// writingCamera saves a real file once hold is closed.
type writingCamera struct{ hold chan struct{} }

func (c *writingCamera) BindSession(context.Context, Facing) (Session, error) {
	return &fakeSession{active: true}, nil
}

func (c *writingCamera) Capture(_ Session, path string, exec Executor, cb Callback) {
	go func() {
		<-c.hold
		if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
			exec.Execute(func() { cb.OnError(err) })
			return
		}
		exec.Execute(func() { cb.OnSaved(AssetRef(path)) })
	}()
}

func TestServiceContextCancelRemovesLateFile(t *testing.T) {
	hold := make(chan struct{})
	saved := make(chan struct{})
	exec := ExecutorFunc(func(fn func()) {
		go func() {
			fn()
			close(saved)
		}()
	})
	svc := NewService(nil, &writingCamera{hold: hold}, exec)
	path := filepath.Join(t.TempDir(), "IMG_20240101_120000.jpg")
	ctx, cancel := context.WithCancel(context.Background())
	tk := svc.Capture(ctx, &fakeSession{active: true}, path)
	cancel()

	wait, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	_, err := tk.Await(wait)
	require.ErrorIs(t, err, context.Canceled)

	close(hold)
	select {
	case <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("camera never reported")
	}
	assert.NoFileExists(t, path)
	assert.Equal(t, uint64(0), svc.Stats().Saved)
}
