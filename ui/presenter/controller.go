package presenter

import (
	"context"
	"log/slog"

	"github.com/soocke/vacation-cam-go/domain/capture"
	"github.com/soocke/vacation-cam-go/domain/permission"
	"github.com/soocke/vacation-cam-go/domain/task"
)

// NavigationMachine is the part of the screen machine driven by navigation buttons.
type NavigationMachine interface {
	EventRequestMap()
	EventBack()
	Reset()
}

// CameraHolder stores the session bound after camera permission is granted.
type CameraHolder interface {
	SetSession(s capture.Session)
}

// Controller is the top-level application controller. It owns the camera
// session and routes user actions to the capture presenter and the machine.
type Controller struct {
	gate    *permission.Gate
	camera  capture.Camera
	facing  capture.Facing
	holder  CameraHolder
	capture *CapturePresenter
	machine NavigationMachine
	logger  *slog.Logger
}

func NewController(logger *slog.Logger, gate *permission.Gate, camera capture.Camera, facing capture.Facing, holder CameraHolder, cp *CapturePresenter, machine NavigationMachine) *Controller {
	return &Controller{gate: gate, camera: camera, facing: facing, holder: holder, capture: cp, machine: machine, logger: logger}
}

// Start asks for camera then location permission. The camera session is bound
// to lifecycle only when camera permission is granted; photos are located only
// when location permission is granted. Denials leave everything as it was.
// The task resolves with the camera decision once both prompts are settled.
func (c *Controller) Start(lifecycle context.Context) *task.Task[bool] {
	return task.Run(lifecycle, c.logger, func(ctx context.Context) (bool, error) {
		granted, err := c.gate.RequestThen(ctx, permission.Camera, func() { c.bind(lifecycle) }).Await(ctx)
		if err != nil {
			return false, err
		}
		if _, err := c.gate.RequestThen(ctx, permission.Location, c.capture.EnableLocation).Await(ctx); err != nil {
			return granted, err
		}
		return granted, nil
	})
}

func (c *Controller) bind(lifecycle context.Context) {
	s, err := c.camera.BindSession(lifecycle, c.facing)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("bind camera failed", "error", err)
		}
		return
	}
	c.holder.SetSession(s)
}

// TakePhoto is the take-photo button action.
func (c *Controller) TakePhoto() *task.Task[capture.AssetRef] { return c.capture.TakePhoto() }

// ViewLocation is the view-location button action.
func (c *Controller) ViewLocation() { c.machine.EventRequestMap() }

// Back is the back/return button action.
func (c *Controller) Back() { c.machine.EventBack() }

// Reset starts a new photo session.
func (c *Controller) Reset() { c.machine.Reset() }
