package orientation

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the clockwise rotation needed to display an image upright.
type Orientation int

const (
	Normal Orientation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (o Orientation) String() string {
	switch o {
	case Normal:
		return "normal"
	case Rotate90:
		return "rotate-90"
	case Rotate180:
		return "rotate-180"
	case Rotate270:
		return "rotate-270"
	default:
		return "unknown"
	}
}

// Degrees returns the clockwise rotation angle.
func (o Orientation) Degrees() int {
	switch o {
	case Rotate90:
		return 90
	case Rotate180:
		return 180
	case Rotate270:
		return 270
	default:
		return 0
	}
}

// FromEXIF maps the EXIF Orientation tag value. Mirrored and unknown values map to Normal.
func FromEXIF(v int) Orientation {
	switch v {
	case 6:
		return Rotate90
	case 3:
		return Rotate180
	case 8:
		return Rotate270
	default:
		return Normal
	}
}

// MetadataReadError reports that orientation metadata could not be read from Source.
type MetadataReadError struct {
	Source string
	Cause  error
}

func (e *MetadataReadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("read orientation metadata: %v", e.Cause)
	}
	return fmt.Sprintf("read orientation metadata from %s: %v", e.Source, e.Cause)
}

func (e *MetadataReadError) Unwrap() error { return e.Cause }

// Read decodes the EXIF Orientation tag from r.
func Read(r io.Reader) (Orientation, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return Normal, &MetadataReadError{Cause: err}
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Normal, &MetadataReadError{Cause: err}
	}
	v, err := tag.Int(0)
	if err != nil {
		return Normal, &MetadataReadError{Cause: err}
	}
	return FromEXIF(v), nil
}

// ReadFile opens path and reads its orientation.
func ReadFile(path string) (Orientation, error) {
	f, err := os.Open(path)
	if err != nil {
		return Normal, &MetadataReadError{Source: path, Cause: err}
	}
	defer f.Close()
	o, err := Read(f)
	if merr, ok := err.(*MetadataReadError); ok {
		merr.Source = path
	}
	return o, err
}

// Apply rotates img clockwise by o. Normal returns img itself.
func Apply(img image.Image, o Orientation) image.Image {
	if img == nil {
		return nil
	}
	// imaging rotates counter-clockwise.
	switch o {
	case Rotate90:
		return imaging.Rotate270(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
