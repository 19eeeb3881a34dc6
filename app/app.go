package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tk "modernc.org/tk9.0"

	"github.com/soocke/vacation-cam-go/config"
	"github.com/soocke/vacation-cam-go/debug"
	"github.com/soocke/vacation-cam-go/ui/theme"
	"github.com/soocke/vacation-cam-go/ui/view"
)

const debugLogInterval = 5 * time.Second

type app struct {
	title   string
	config  *config.Config
	cfgPath string
	logger  *slog.Logger
	tick    time.Duration
	afterID string

	lifecycle context.Context
	cancel    context.CancelFunc
	c         *Container
	closed    bool
}

func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	return &app{
		title:   title,
		config:  cfg,
		cfgPath: cfgPath,
		logger:  logger,
		tick:    time.Duration(cfg.TickMillis) * time.Millisecond,
	}
}

// Start builds the window and runs the Tk event loop until exit or ctx ends.
func (a *app) Start(ctx context.Context) {
	a.lifecycle, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	tk.App.WmTitle(a.title)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", a.exitHandler)
	tk.WmGeometry(tk.App, fmt.Sprintf("%dx%d+100+100", a.config.WindowWidth, a.config.WindowHeight))
	theme.Apply()

	a.c = BuildContainer(a.lifecycle, a.config, a.cfgPath, a.logger)
	defer a.c.Close()
	ctrl := a.c.Controller
	a.c.RootView.Build(view.Handlers{
		TakePhoto:    func() { ctrl.TakePhoto() },
		ViewLocation: ctrl.ViewLocation,
		Back:         ctrl.Back,
		Reset:        ctrl.Reset,
		Settings:     a.c.Settings.OpenOrFocus,
		Exit:         a.exitHandler,
	})
	a.c.Loop.Schedule = a.scheduleUpdate

	if a.config.Debug {
		debug.StartGoroutineLogger(a.lifecycle, debugLogInterval, a.logger)
		debug.StartMemLogger(a.lifecycle, debugLogInterval, a.logger)
		debug.StartCaptureStatsLogger(a.lifecycle, debugLogInterval, a.logger, a.c.CaptureSvc)
	}

	// Prompts are answered through the dialog pumped by the update loop.
	ctrl.Start(a.lifecycle)
	a.logger.Info("app started", "pictures_dir", a.c.Storage.Dir, "prompt_permissions", a.config.PromptPermissions)

	a.scheduleUpdate()
	tk.App.Wait()
}

func (a *app) update() {
	if a.lifecycle.Err() != nil {
		a.exitHandler()
		return
	}
	a.c.Loop.Tick()
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = tk.TclAfter(a.tick, a.update)
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		tk.TclAfterCancel(a.afterID)
	}
	if a.config.ApplyGeometry(tk.WmGeometry(tk.App)) && a.cfgPath != "" {
		if err := a.config.Save(a.cfgPath); err != nil {
			a.logger.Warn("saving window size failed", "error", err)
		}
	}
	a.cancel()
	tk.Destroy(tk.App)
}
