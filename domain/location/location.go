package location

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

var (
	// ErrNoLocation is returned when a photo carries no usable position.
	ErrNoLocation = errors.New("no location")
	// ErrOutOfRange is returned for coordinates outside WGS84 bounds.
	ErrOutOfRange = errors.New("coordinate out of range")
)

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// New validates and returns a Location.
func New(lat, lon float64) (Location, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || math.IsNaN(lat) || math.IsNaN(lon) {
		return Location{}, fmt.Errorf("%w: lat=%v lon=%v", ErrOutOfRange, lat, lon)
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}

func (l Location) String() string {
	return fmt.Sprintf("%.6f, %.6f", l.Latitude, l.Longitude)
}

// Provider looks up where a captured photo was taken.
type Provider interface {
	Locate(ctx context.Context, ref capture.AssetRef) (Location, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, ref capture.AssetRef) (Location, error)

func (f ProviderFunc) Locate(ctx context.Context, ref capture.AssetRef) (Location, error) {
	return f(ctx, ref)
}

// ExifProvider reads the GPS position embedded in the stored picture.
type ExifProvider struct{}

// Locate returns ErrNoLocation when the file has no GPS tags.
func (ExifProvider) Locate(ctx context.Context, ref capture.AssetRef) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	f, err := os.Open(ref.Path())
	if err != nil {
		return Location{}, fmt.Errorf("locate %s: %w", ref.Path(), err)
	}
	defer f.Close()
	return FromEXIF(f)
}

// FromEXIF decodes GPS latitude and longitude from r.
func FromEXIF(r io.Reader) (Location, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrNoLocation, err)
	}
	lat, lon, err := x.LatLong()
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrNoLocation, err)
	}
	return New(lat, lon)
}
