package orientation

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
)

// Opener returns a reader for the image identified by ref.
type Opener func(ref string) (io.ReadCloser, error)

// Corrector applies embedded orientation metadata at display time.
// Stored bytes are never modified.
type Corrector struct {
	logger *slog.Logger
	open   Opener
}

// NewCorrector returns a Corrector reading sources through open. A nil open reads local files.
func NewCorrector(logger *slog.Logger, open Opener) *Corrector {
	if open == nil {
		open = func(ref string) (io.ReadCloser, error) { return os.Open(ref) }
	}
	return &Corrector{logger: logger, open: open}
}

// Orientation reads the orientation of ref. Unreadable sources yield Normal.
func (c *Corrector) Orientation(ref string) Orientation {
	rc, err := c.open(ref)
	if err != nil {
		c.logFallback(ref, &MetadataReadError{Source: ref, Cause: err})
		return Normal
	}
	defer rc.Close()
	o, err := Read(rc)
	if err != nil {
		c.logFallback(ref, err)
		return Normal
	}
	return o
}

// Correct returns img rotated per the metadata of ref.
func (c *Corrector) Correct(img image.Image, ref string) image.Image {
	return Apply(img, c.Orientation(ref))
}

// Load decodes ref and returns the upright image.
func (c *Corrector) Load(ref string) (image.Image, error) {
	rc, err := c.open(ref)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer rc.Close()
	// No auto-orientation here; Correct applies the EXIF tag exactly once.
	img, err := imaging.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return c.Correct(img, ref), nil
}

func (c *Corrector) logFallback(ref string, err error) {
	if c.logger != nil {
		c.logger.Debug("orientation unreadable, using normal", "ref", ref, "error", err)
	}
}
