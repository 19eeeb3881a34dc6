package model

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

// DefaultThumbnailCacheSize bounds the cache when no size is configured.
const DefaultThumbnailCacheSize = 64

// ThumbnailCache keeps display-ready, orientation-corrected thumbnails keyed by asset.
type ThumbnailCache struct {
	c *lru.Cache[capture.AssetRef, image.Image]
}

// NewThumbnailCache returns a cache holding at most size entries.
func NewThumbnailCache(size int) (*ThumbnailCache, error) {
	if size <= 0 {
		size = DefaultThumbnailCacheSize
	}
	c, err := lru.New[capture.AssetRef, image.Image](size)
	if err != nil {
		return nil, err
	}
	return &ThumbnailCache{c: c}, nil
}

func (t *ThumbnailCache) Get(ref capture.AssetRef) (image.Image, bool) {
	if t == nil {
		return nil, false
	}
	return t.c.Get(ref)
}

func (t *ThumbnailCache) Add(ref capture.AssetRef, img image.Image) {
	if t == nil || img == nil {
		return
	}
	t.c.Add(ref, img)
}

func (t *ThumbnailCache) Len() int {
	if t == nil {
		return 0
	}
	return t.c.Len()
}

// Remove drops the entry for ref, if any.
func (t *ThumbnailCache) Remove(ref capture.AssetRef) {
	if t == nil {
		return
	}
	t.c.Remove(ref)
}

// Purge drops every entry.
func (t *ThumbnailCache) Purge() {
	if t == nil {
		return
	}
	t.c.Purge()
}
