package theme

// Palette and base theme activation for the camera UI.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // dialogs
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // shutter button
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorContent   = "#1f2933" // empty content area
)

// Apply activates the base theme and sets the root background.
func Apply() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(ColorBg))
}
