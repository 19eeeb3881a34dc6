package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/vacation-cam-go/domain/screen"
	"github.com/soocke/vacation-cam-go/ui/images"
	"github.com/soocke/vacation-cam-go/ui/model"
)

// ImageLoader decodes a stored picture and returns it upright.
type ImageLoader interface {
	Load(ref string) (image.Image, error)
}

// ThumbnailPresenter renders captured photos as a contact sheet of
// orientation-corrected thumbnails.
type ThumbnailPresenter struct {
	loader ImageLoader
	cache  *model.ThumbnailCache
	size   int
	cols   int
	logger *slog.Logger
}

func NewThumbnailPresenter(logger *slog.Logger, loader ImageLoader, cache *model.ThumbnailCache, size, cols int) *ThumbnailPresenter {
	if size <= 0 {
		size = 160
	}
	if cols <= 0 {
		cols = 3
	}
	return &ThumbnailPresenter{loader: loader, cache: cache, size: size, cols: cols, logger: logger}
}

// Render returns the contact sheet, or nil when there are no photos.
// Unreadable photos leave an empty cell.
func (p *ThumbnailPresenter) Render(photos []screen.CapturedPhoto) image.Image {
	if p == nil || len(photos) == 0 {
		return nil
	}
	thumbs := make([]image.Image, 0, len(photos))
	for _, ph := range photos {
		thumbs = append(thumbs, p.thumbnail(ph))
	}
	sheet := images.ContactSheet(thumbs, p.size, p.cols)
	if sheet == nil {
		return nil
	}
	return sheet
}

// OnSnapshot keeps the cache in step with the photo collection. A newly
// appended photo may reuse the name of one taken in the same second, so its
// entry is dropped; an emptied collection purges the cache.
func (p *ThumbnailPresenter) OnSnapshot(prev, next screen.Snapshot) {
	if p == nil || p.cache == nil {
		return
	}
	if len(next.Photos) == 0 {
		if len(prev.Photos) > 0 {
			p.cache.Purge()
		}
		return
	}
	for i := len(prev.Photos); i < len(next.Photos); i++ {
		p.cache.Remove(next.Photos[i].Ref)
	}
}

func (p *ThumbnailPresenter) thumbnail(ph screen.CapturedPhoto) image.Image {
	if img, ok := p.cache.Get(ph.Ref); ok {
		return img
	}
	if p.loader == nil {
		return nil
	}
	img, err := p.loader.Load(ph.Ref.Path())
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("thumbnail unavailable", "path", ph.Ref.Path(), "error", err)
		}
		return nil
	}
	thumb := images.ScaleToFit(img, p.size, p.size)
	p.cache.Add(ph.Ref, thumb)
	return thumb
}
