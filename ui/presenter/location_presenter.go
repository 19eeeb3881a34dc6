package presenter

import (
	"image"

	"github.com/soocke/vacation-cam-go/domain/location"
	"github.com/soocke/vacation-cam-go/domain/mapview"
)

// MapRenderer is a map collaborator that can draw itself.
type MapRenderer interface {
	mapview.MapView
	Render() *image.RGBA
}

// LocationPresenter redraws the map from scratch on every render.
type LocationPresenter struct {
	m MapRenderer
}

// NewLocationPresenter initializes m with tileSource and zoom.
func NewLocationPresenter(m MapRenderer, tileSource string, zoom int) *LocationPresenter {
	mapview.Init(m, tileSource, zoom)
	return &LocationPresenter{m: m}
}

func (p *LocationPresenter) Render(loc *location.Location) image.Image {
	if p == nil || p.m == nil {
		return nil
	}
	mapview.Present(p.m, loc)
	return p.m.Render()
}
