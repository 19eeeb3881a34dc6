package mapview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/vacation-cam-go/domain/location"
)

const (
	tileSize     = 256
	markerRadius = 6
	maxZoom      = 19
)

var (
	landColor   = color.RGBA{R: 0xe8, G: 0xe4, B: 0xd8, A: 0xff}
	gridColor   = color.RGBA{R: 0xb8, G: 0xb4, B: 0xa8, A: 0xff}
	markerColor = color.RGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
	textColor   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

// RasterMap is an offline MapView that draws a web mercator tile grid,
// markers and a caption into an RGBA image.
type RasterMap struct {
	mu      sync.Mutex
	width   int
	height  int
	source  string
	zoom    int
	center  location.Location
	markers []location.Location
}

// NewRasterMap returns a map of the given pixel size centered on 0,0.
func NewRasterMap(width, height int) *RasterMap {
	if width <= 0 {
		width = 480
	}
	if height <= 0 {
		height = 360
	}
	return &RasterMap{width: width, height: height, source: DefaultTileSource, zoom: DefaultZoom}
}

func (r *RasterMap) SetTileSource(name string) {
	r.mu.Lock()
	r.source = name
	r.mu.Unlock()
}

func (r *RasterMap) SetZoom(level int) {
	if level < 0 {
		level = 0
	}
	if level > maxZoom {
		level = maxZoom
	}
	r.mu.Lock()
	r.zoom = level
	r.mu.Unlock()
}

func (r *RasterMap) CenterOn(loc location.Location) {
	r.mu.Lock()
	r.center = loc
	r.mu.Unlock()
}

func (r *RasterMap) AddMarker(loc location.Location) {
	r.mu.Lock()
	r.markers = append(r.markers, loc)
	r.mu.Unlock()
}

func (r *RasterMap) ClearMarkers() {
	r.mu.Lock()
	r.markers = nil
	r.mu.Unlock()
}

// Markers returns a copy of the current markers.
func (r *RasterMap) Markers() []location.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]location.Location(nil), r.markers...)
}

// Center returns the current map center.
func (r *RasterMap) Center() location.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.center
}

// TileSource returns the configured tile source name.
func (r *RasterMap) TileSource() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

// Zoom returns the configured zoom level.
func (r *RasterMap) Zoom() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zoom
}

// project returns the world pixel position of loc at zoom.
func project(loc location.Location, zoom int) (float64, float64) {
	world := tileSize * math.Exp2(float64(zoom))
	lat := math.Max(-85.05112878, math.Min(85.05112878, loc.Latitude))
	x := (loc.Longitude + 180) / 360 * world
	s := math.Sin(lat * math.Pi / 180)
	y := (0.5 - math.Log((1+s)/(1-s))/(4*math.Pi)) * world
	return x, y
}

// PixelOf returns the image position of loc relative to the current center.
func (r *RasterMap) PixelOf(loc location.Location) image.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelOf(loc)
}

func (r *RasterMap) pixelOf(loc location.Location) image.Point {
	cx, cy := project(r.center, r.zoom)
	px, py := project(loc, r.zoom)
	return image.Pt(int(math.Round(px-cx))+r.width/2, int(math.Round(py-cy))+r.height/2)
}

// Render draws the current map state.
func (r *RasterMap) Render() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(landColor), image.Point{}, draw.Src)

	cx, cy := project(r.center, r.zoom)
	ox := int(math.Floor(cx)) % tileSize
	oy := int(math.Floor(cy)) % tileSize
	for x := (r.width/2 - ox) % tileSize; x < r.width; x += tileSize {
		if x < 0 {
			continue
		}
		for y := 0; y < r.height; y++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
	for y := (r.height/2 - oy) % tileSize; y < r.height; y += tileSize {
		if y < 0 {
			continue
		}
		for x := 0; x < r.width; x++ {
			img.SetRGBA(x, y, gridColor)
		}
	}

	for _, m := range r.markers {
		p := r.pixelOf(m)
		fillCircle(img, p, markerRadius, markerColor)
	}

	caption := fmt.Sprintf("%s z%d", r.source, r.zoom)
	if len(r.markers) > 0 {
		caption += "  " + r.center.String()
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(6, r.height-6),
	}
	d.DrawString(caption)
	return img
}

func fillCircle(img *image.RGBA, c image.Point, radius int, col color.RGBA) {
	b := img.Bounds()
	for y := c.Y - radius; y <= c.Y+radius; y++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if image.Pt(x, y).In(b) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

var _ MapView = (*RasterMap)(nil)
