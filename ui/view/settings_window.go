package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/vacation-cam-go/config"
	"github.com/soocke/vacation-cam-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var settingLabels = map[string]string{
	"pictures_dir":           "Pictures Dir (empty = default)",
	"camera_facing":          "Camera Facing (back/front)",
	"tile_source":            "Map Tile Source",
	"map_zoom":               "Map Zoom (0-19)",
	"thumbnail_size":         "Thumbnail Size Px",
	"prompt_permissions":     "Ask For Permissions (true/false)",
	"show_return_affordance": "Show Return Button (true/false)",
	"debug":                  "Debug Logging (true/false)",
}

// SettingsWindow edits the persisted configuration. Changes take effect on next start.
type SettingsWindow struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	win     *ToplevelWidget
	note    *LabelWidget
	widgets map[string]*TextWidget // keyed by config key
}

// NewSettingsWindow creates the view bound to cfg.
func NewSettingsWindow(cfg *config.Config, cfgPath string, logger *slog.Logger) *SettingsWindow {
	return &SettingsWindow{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// OpenOrFocus shows the window, raising it if already open.
func (v *SettingsWindow) OpenOrFocus() {
	if v == nil || v.cfg == nil {
		return
	}
	if v.win != nil {
		WmAttributes(v.win.Window, "-topmost", 1)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background(theme.ColorSurface))
	win.WmTitle("Settings")
	v.win = win
	v.widgets = make(map[string]*TextWidget)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
	GridColumnConfigure(win.Window, 1, Weight(1))

	row := 0
	for _, key := range config.Editable {
		lbl := win.Label(Txt(settingLabels[key]), Anchor("w"), Background(theme.ColorSurface))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(28))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", v.cfg.Get(key))
		v.widgets[key] = w
		row++
	}
	v.note = win.Label(Txt("Changes apply on next start."), Anchor("w"), Background(theme.ColorSurface), Foreground(theme.ColorTextMuted))
	Grid(v.note, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	apply := win.Button(Txt("Save [Enter]"), Command(v.ApplyChanges))
	Grid(apply, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	cancel := win.Button(Txt("Close [Esc]"), Command(v.close))
	Grid(cancel, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Return>", Command(v.ApplyChanges))
	Bind(win, "<Escape>", Command(v.close))
}

func (v *SettingsWindow) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

// ApplyChanges parses widget text into the config and persists it.
// Unparseable fields keep their previous value.
func (v *SettingsWindow) ApplyChanges() {
	if v == nil || v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	for key, w := range v.widgets {
		if err := cfg.Set(key, v.text(w)); err != nil && v.logger != nil {
			v.logger.Warn("setting ignored", "key", key, "error", err)
		}
	}
	_ = cfg.Validate()
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		v.setNote("Save failed: " + err.Error())
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	v.setNote("Saved. Changes apply on next start.")
}

func (v *SettingsWindow) setNote(s string) {
	if v.note != nil {
		v.note.Configure(Txt(s))
	}
}

func (v *SettingsWindow) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.note = nil
		v.widgets = nil
	}
}
