package view

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/soocke/vacation-cam-go/ui/images"
	"github.com/soocke/vacation-cam-go/ui/presenter"
	"github.com/soocke/vacation-cam-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions. Nil handlers are ignored.
type Handlers struct {
	TakePhoto    func()
	ViewLocation func()
	Back         func()
	Reset        func()
	Settings     func()
	Exit         func()
}

// RootView composes the main window: title, content image, action buttons and status line.
// All methods must run on the Tk thread.
type RootView struct {
	logger   *slog.Logger
	contentW int
	contentH int

	title       *LabelWidget
	content     *LabelWidget
	status      *LabelWidget
	captureBtn  *ButtonWidget
	locationBtn *ButtonWidget
	backBtn     *ButtonWidget

	photo      *Img // current Tk photo shown in content
	canCapture bool
}

func NewRootView(logger *slog.Logger, contentW, contentH int) *RootView {
	if contentW < 50 {
		contentW = 50
	}
	if contentH < 50 {
		contentH = 50
	}
	return &RootView{logger: logger, contentW: contentW, contentH: contentH}
}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.title = Label(Txt(""), Anchor("w"), Background(theme.ColorBg), Foreground(theme.ColorText))
	Grid(rv.title, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	rv.photo = NewPhoto(Data(images.EncodePNG(rv.placeholder())))
	rv.content = Label(Image(rv.photo), Borderwidth(1), Relief("sunken"))
	Grid(rv.content, Row(1), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	GridRowConfigure(App, 1, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	btnFrame := Frame(Background(theme.ColorBg))
	Grid(btnFrame, Row(2), Column(0), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.captureBtn = Button(Txt("Take photo"), Command(orNop(h.TakePhoto)), Background(theme.ColorPrimary), Foreground("white"))
	Grid(rv.captureBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.locationBtn = Button(Txt("View location"), Command(orNop(h.ViewLocation)))
	Grid(rv.locationBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.backBtn = Button(Txt("Back"), Command(orNop(h.Back)))
	Grid(rv.backBtn, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	settingsBtn := Button(Txt("Settings"), Command(orNop(h.Settings)))
	Grid(settingsBtn, In(btnFrame), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(orNop(h.Exit)))
	Grid(exitBtn, In(btnFrame), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.status = Label(Txt(""), Anchor("w"), Borderwidth(1), Relief("ridge"), Foreground(theme.ColorTextMuted))
	Grid(rv.status, Row(3), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	Bind(App, "<Control-n>", Command(orNop(h.Reset)))
	Bind(App, "<space>", Command(func() {
		if rv.canCapture {
			orNop(h.TakePhoto)()
		}
	}))
}

func (rv *RootView) placeholder() image.Image {
	return imaging.New(rv.contentW, rv.contentH, color.NRGBA{R: 0x1f, G: 0x29, B: 0x33, A: 0xff})
}

// SetTitle updates the screen title.
func (rv *RootView) SetTitle(text string) {
	if rv != nil && rv.title != nil {
		rv.title.Configure(Txt(text))
	}
}

// SetContent replaces the content image. A nil image shows the empty placeholder.
func (rv *RootView) SetContent(img image.Image) {
	if rv == nil || rv.content == nil {
		return
	}
	if img == nil {
		img = rv.placeholder()
	}
	scaled := images.ScaleToFit(img, rv.contentW, rv.contentH)
	pngBytes := images.EncodePNG(scaled)
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if rv.photo != nil {
		rv.photo.Delete()
	}
	rv.photo = NewPhoto(Data(pngBytes))
	rv.content.Configure(Image(rv.photo))
}

// SetControls shows which actions are currently available.
func (rv *RootView) SetControls(c presenter.Controls) {
	if rv == nil {
		return
	}
	rv.canCapture = c.Capture
	setEnabled(rv.captureBtn, c.Capture)
	setEnabled(rv.locationBtn, c.ViewLocation)
	setEnabled(rv.backBtn, c.Back)
	if rv.backBtn != nil && c.BackLabel != "" {
		rv.backBtn.Configure(Txt(c.BackLabel))
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.status != nil {
		rv.status.Configure(Txt(text))
	}
}

func setEnabled(b *ButtonWidget, enabled bool) {
	if b == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	b.Configure(State(state))
}
