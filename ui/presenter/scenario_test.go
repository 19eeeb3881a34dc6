package presenter

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/location"
	"github.com/soocke/vacation-cam-go/domain/mapview"
	"github.com/soocke/vacation-cam-go/domain/naming"
	"github.com/soocke/vacation-cam-go/domain/permission"
	"github.com/soocke/vacation-cam-go/domain/screen"
	"github.com/soocke/vacation-cam-go/ui/model"
)

type harness struct {
	ctx     context.Context
	machine *screen.Machine
	camera  *model.CameraModel
	capture *CapturePresenter
	ctrl    *Controller
	dir     string
}

func grey() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	return img, nil
}

func newHarness(t *testing.T, prompter permission.Prompter, locator location.Provider) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := &harness{ctx: ctx, dir: t.TempDir()}
	h.machine = screen.NewMachine(nil)
	t.Cleanup(h.machine.Close)
	h.camera = &model.CameraModel{}
	cam := capture.NewScreenCamera(nil, grey)
	svc := capture.NewService(nil, cam, nil)
	h.capture = NewCapturePresenter(ctx, nil, h.camera, svc, capture.NewStorage(h.dir), h.machine, locator)
	h.ctrl = NewController(nil, permission.NewGate(nil, prompter), cam, capture.FacingBack, h.camera, h.capture, h.machine)
	return h
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// waitForSnapshot polls the machine until cond holds.
func waitForSnapshot(t *testing.T, m *screen.Machine, cond func(screen.Snapshot) bool, timeout time.Duration) screen.Snapshot {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s := m.Snapshot(); cond(s) {
			return s
		}
		time.Sleep(5 * time.Millisecond)
	}
	s := m.Snapshot()
	t.Fatalf("timeout waiting for snapshot (got %+v)", s)
	return s
}

func TestScenarioA_GrantCaptureShowsThumbnail(t *testing.T) {
	h := newHarness(t, permission.AllowAll(), location.ExifProvider{})
	granted, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	require.True(t, granted)
	require.True(t, h.camera.Ready())

	ref, err := h.ctrl.TakePhoto().Await(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, h.dir, filepath.Dir(ref.Path()))
	assert.True(t, naming.Valid(filepath.Base(ref.Path())), "unexpected name %s", ref.Path())
	assert.FileExists(t, ref.Path())

	s := waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool { return s.Screen == screen.PhotoThumbnail }, time.Second)
	require.Len(t, s.Photos, 1)
	assert.Equal(t, ref, s.Photos[0].Ref)
	assert.Nil(t, s.PhotoLocation)
}

func TestScenarioB_ViewLocationWithoutPosition(t *testing.T) {
	h := newHarness(t, permission.AllowAll(), location.ExifProvider{})
	_, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	require.NoError(t, err)
	waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool { return s.Screen == screen.PhotoThumbnail }, time.Second)

	h.ctrl.ViewLocation()
	s := waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool { return s.Screen == screen.Location }, time.Second)
	require.Len(t, s.Photos, 1)

	raster := mapview.NewRasterMap(120, 80)
	NewLocationPresenter(raster, "", 0).Render(s.PhotoLocation)
	assert.Empty(t, raster.Markers())
}

func TestScenarioB_ViewLocationWithPosition(t *testing.T) {
	want := location.Location{Latitude: 40.4168, Longitude: -3.7038}
	locator := location.ProviderFunc(func(context.Context, capture.AssetRef) (location.Location, error) { return want, nil })
	h := newHarness(t, permission.AllowAll(), locator)
	_, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	require.True(t, h.capture.LocationEnabled())
	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	require.NoError(t, err)

	h.ctrl.ViewLocation()
	s := waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool {
		return s.Screen == screen.Location && s.PhotoLocation != nil
	}, time.Second)

	raster := mapview.NewRasterMap(120, 80)
	p := NewLocationPresenter(raster, "", 0)
	p.Render(s.PhotoLocation)
	p.Render(s.PhotoLocation)
	require.Len(t, raster.Markers(), 1)
	assert.Equal(t, want, raster.Markers()[0])
	assert.Equal(t, want, raster.Center())
	assert.Equal(t, mapview.DefaultTileSource, raster.TileSource())
	assert.Equal(t, mapview.DefaultZoom, raster.Zoom())

	h.ctrl.Back()
	waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool { return s.Screen == screen.PhotoThumbnail }, time.Second)
}

func TestScenarioC_DenyCameraKeepsCaptureScreen(t *testing.T) {
	h := newHarness(t, permission.Static{permission.Camera: false, permission.Location: false}, location.ExifProvider{})
	granted, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	assert.False(t, granted)
	assert.False(t, h.camera.Ready())
	assert.False(t, h.capture.LocationEnabled())

	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	assert.ErrorIs(t, err, capture.ErrSessionClosed)

	time.Sleep(20 * time.Millisecond)
	s := h.machine.Snapshot()
	assert.Equal(t, screen.CapturePhoto, s.Screen)
	assert.Empty(t, s.Photos)
}

func TestLocationDeniedSkipsLocator(t *testing.T) {
	called := make(chan struct{}, 1)
	locator := location.ProviderFunc(func(context.Context, capture.AssetRef) (location.Location, error) {
		called <- struct{}{}
		return location.Location{}, nil
	})
	h := newHarness(t, permission.Static{permission.Camera: true, permission.Location: false}, locator)
	granted, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	require.True(t, granted)
	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	require.NoError(t, err)
	select {
	case <-called:
		t.Fatal("locator must not run without location permission")
	default:
	}
}

func TestResetReturnsToCapture(t *testing.T) {
	h := newHarness(t, permission.AllowAll(), location.ExifProvider{})
	_, err := h.ctrl.Start(h.ctx).Await(waitCtx(t))
	require.NoError(t, err)
	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	require.NoError(t, err)
	waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool { return len(s.Photos) == 1 }, time.Second)

	h.ctrl.Reset()
	waitForSnapshot(t, h.machine, func(s screen.Snapshot) bool {
		return s.Screen == screen.CapturePhoto && len(s.Photos) == 0
	}, time.Second)
}

func TestLifecycleEndInvalidatesSession(t *testing.T) {
	h := newHarness(t, permission.AllowAll(), location.ExifProvider{})
	lifecycle, end := context.WithCancel(h.ctx)
	_, err := h.ctrl.Start(lifecycle).Await(waitCtx(t))
	require.NoError(t, err)
	require.True(t, h.camera.Ready())
	end()
	assert.False(t, h.camera.Ready())
	_, err = h.ctrl.TakePhoto().Await(waitCtx(t))
	assert.ErrorIs(t, err, capture.ErrSessionClosed)
}
