package view

import (
	"context"
	"log/slog"

	"github.com/soocke/vacation-cam-go/domain/permission"
	"github.com/soocke/vacation-cam-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

type permissionRequest struct {
	kind  permission.Kind
	reply chan bool // buffered, written once
}

// PermissionDialog asks the user for a permission in a modal-style window.
// Request may be called from any goroutine; Pump must run on the Tk thread.
type PermissionDialog struct {
	logger   *slog.Logger
	requests chan permissionRequest
	win      *ToplevelWidget
	pending  *permissionRequest
}

// NewPermissionDialog returns a dialog prompter. Nothing is shown until Pump sees a request.
func NewPermissionDialog(logger *slog.Logger) *PermissionDialog {
	return &PermissionDialog{logger: logger, requests: make(chan permissionRequest)}
}

// Request blocks until the user answers or ctx ends.
func (d *PermissionDialog) Request(ctx context.Context, kind permission.Kind) (bool, error) {
	req := permissionRequest{kind: kind, reply: make(chan bool, 1)}
	select {
	case d.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pump opens the next queued prompt when none is showing.
func (d *PermissionDialog) Pump() {
	if d == nil || d.win != nil {
		return
	}
	select {
	case req := <-d.requests:
		d.show(req)
	default:
	}
}

func promptText(kind permission.Kind) string {
	switch kind {
	case permission.Camera:
		return "Allow Vacation Cam to take pictures?"
	case permission.Location:
		return "Allow Vacation Cam to use the location of your photos?"
	}
	return "Allow Vacation Cam access to " + kind.String() + "?"
}

func (d *PermissionDialog) show(req permissionRequest) {
	d.pending = &req
	win := App.Toplevel(Borderwidth(2), Background(theme.ColorSurface))
	win.WmTitle("Permission")
	d.win = win
	WmAttributes(win.Window, "-topmost", 1)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", d.deny)

	msg := win.Label(Txt(promptText(req.kind)), Background(theme.ColorSurface), Foreground(theme.ColorText))
	Grid(msg, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("2m"), Pady("2m"))
	allow := win.Button(Txt("Allow [Enter]"), Command(d.allow))
	Grid(allow, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	deny := win.Button(Txt("Deny [Esc]"), Command(d.deny))
	Grid(deny, Row(1), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Bind(win, "<Return>", Command(d.allow))
	Bind(win, "<Escape>", Command(d.deny))
}

func (d *PermissionDialog) allow() { d.answer(true) }
func (d *PermissionDialog) deny()  { d.answer(false) }

func (d *PermissionDialog) answer(granted bool) {
	if d.pending != nil {
		d.pending.reply <- granted
		d.pending = nil
		if d.logger != nil {
			d.logger.Debug("permission answered", "granted", granted)
		}
	}
	if d.win != nil {
		Destroy(d.win)
		d.win = nil
	}
}
