package mapview

import "github.com/soocke/vacation-cam-go/domain/location"

// DefaultTileSource and DefaultZoom are applied when a map is created.
const (
	DefaultTileSource = "MAPNIK"
	DefaultZoom       = 15
)

// MapView is the map widget collaborator.
type MapView interface {
	SetTileSource(name string)
	SetZoom(level int)
	CenterOn(loc location.Location)
	AddMarker(loc location.Location)
	ClearMarkers()
}

// Init applies the tile source and zoom once at map creation. Empty or
// non-positive values select the defaults.
func Init(m MapView, tileSource string, zoom int) {
	if tileSource == "" {
		tileSource = DefaultTileSource
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	m.SetTileSource(tileSource)
	m.SetZoom(zoom)
}

// Present redraws m for loc. Markers are always cleared first; a present
// location centers the map and gets exactly one marker.
func Present(m MapView, loc *location.Location) {
	m.ClearMarkers()
	if loc == nil {
		return
	}
	m.CenterOn(*loc)
	m.AddMarker(*loc)
}
