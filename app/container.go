package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/vacation-cam-go/config"
	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/location"
	"github.com/soocke/vacation-cam-go/domain/mapview"
	"github.com/soocke/vacation-cam-go/domain/orientation"
	"github.com/soocke/vacation-cam-go/domain/permission"
	"github.com/soocke/vacation-cam-go/domain/screen"
	"github.com/soocke/vacation-cam-go/ui/model"
	"github.com/soocke/vacation-cam-go/ui/presenter"
	"github.com/soocke/vacation-cam-go/ui/view"
)

const (
	previewInterval = 250 * time.Millisecond
	sheetColumns    = 3
)

// Container assembles models, services, presenters and views.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Domain
	Machine    *screen.Machine
	Camera     *capture.ScreenCamera
	Storage    *capture.DirStorage
	CaptureSvc capture.Service
	Gate       *permission.Gate

	// Models
	CameraModel *model.CameraModel
	Session     *model.SessionModel
	Thumbs      *model.ThumbnailCache

	// Views
	RootView *view.RootView
	Settings *view.SettingsWindow
	Dialog   *view.PermissionDialog // nil when permissions are auto-granted

	// Presenters
	CapturePresenter *presenter.CapturePresenter
	ScreenPresenter  *presenter.ScreenPresenter
	StatusPresenter  *presenter.StatusPresenter
	Preview          *presenter.PreviewPresenter
	Controller       *presenter.Controller
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. No Tk widgets are created here.
// lifecycle bounds the camera session and in-flight captures.
func BuildContainer(lifecycle context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) *Container {
	c := &Container{Config: cfg, Logger: logger}
	facing := capture.ParseFacing(cfg.CameraFacing)

	c.Machine = screen.NewMachine(logger, screen.WithReturnAffordance(cfg.ShowReturnAffordance))
	c.Camera = capture.NewScreenCamera(logger, capture.Grab)
	c.Storage = capture.NewStorage(cfg.PicturesDir)
	c.CaptureSvc = capture.NewService(logger, c.Camera, capture.GoExecutor)

	var prompter permission.Prompter = permission.AllowAll()
	if cfg.PromptPermissions {
		c.Dialog = view.NewPermissionDialog(logger)
		prompter = c.Dialog
	}
	c.Gate = permission.NewGate(logger, prompter)

	c.CameraModel = &model.CameraModel{}
	c.Session = model.NewSessionModel()
	thumbs, err := model.NewThumbnailCache(cfg.ThumbnailCacheSize)
	if err != nil {
		logger.Warn("thumbnail cache disabled", "error", err)
	}
	c.Thumbs = thumbs

	contentW, contentH := cfg.WindowWidth-20, cfg.WindowHeight-120
	c.RootView = view.NewRootView(logger, contentW, contentH)
	c.Settings = view.NewSettingsWindow(cfg, cfgPath, logger)

	c.CapturePresenter = presenter.NewCapturePresenter(lifecycle, logger, c.CameraModel, c.CaptureSvc, c.Storage, c.Machine, location.ExifProvider{})
	c.Preview = presenter.NewPreviewPresenter(logger, capture.Grab, previewInterval, contentW, contentH, facing == capture.FacingFront)
	thumbPresenter := presenter.NewThumbnailPresenter(logger, orientation.NewCorrector(logger, nil), c.Thumbs, cfg.ThumbnailSize, sheetColumns)
	locPresenter := presenter.NewLocationPresenter(mapview.NewRasterMap(cfg.MapWidth, cfg.MapHeight), cfg.TileSource, cfg.MapZoom)
	c.ScreenPresenter = presenter.NewScreenPresenter(c.RootView, c.CameraModel, thumbPresenter, locPresenter, c.Preview)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Session, c.Machine, c.RootView)
	c.Controller = presenter.NewController(logger, c.Gate, c.Camera, facing, c.CameraModel, c.CapturePresenter, c.Machine)

	// Cache eviction runs before the screen presenter queues a redraw.
	c.Machine.AddListener(thumbPresenter.OnSnapshot)
	c.Machine.AddListener(c.ScreenPresenter.OnSnapshot)
	c.ScreenPresenter.Prime(c.Machine.Snapshot())

	c.Loop = presenter.NewLoop(c.ScreenPresenter, c.StatusPresenter, nil)
	if c.Dialog != nil {
		c.Loop.Before = c.Dialog.Pump
	}
	return c
}

// Close stops the state machine.
func (c *Container) Close() {
	if c != nil && c.Machine != nil {
		c.Machine.Close()
	}
}
