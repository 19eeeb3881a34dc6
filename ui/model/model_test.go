package model

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

type stubSession struct{ active bool }

func (s *stubSession) ID() string             { return "stub" }
func (s *stubSession) Facing() capture.Facing { return capture.FacingBack }
func (s *stubSession) Active() bool           { return s.active }

func TestCameraModel_Session(t *testing.T) {
	var m CameraModel
	_, ok := m.Session()
	assert.False(t, ok)
	assert.False(t, m.Ready())

	s := &stubSession{active: true}
	m.SetSession(s)
	got, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, capture.Session(s), got)
	assert.True(t, m.Ready())

	s.active = false
	_, ok = m.Session()
	assert.False(t, ok, "inactive sessions are not handed out")

	m.SetSession(nil)
	_, ok = m.Session()
	assert.False(t, ok)
}

func TestCameraModel_SessionFromCamera(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := capture.NewScreenCamera(nil, nil).BindSession(ctx, capture.FacingFront)
	require.NoError(t, err)
	var m CameraModel
	m.SetSession(s)
	assert.True(t, m.Ready())
	cancel()
	assert.False(t, m.Ready())
}

func TestCameraModel_Busy(t *testing.T) {
	var m CameraModel
	m.SetSession(&stubSession{active: true})
	require.True(t, m.TryBegin())
	assert.False(t, m.TryBegin())
	assert.False(t, m.Ready())
	assert.True(t, m.Bound(), "a capture in flight keeps the session bound")
	m.End()
	assert.True(t, m.Ready())
}

func TestThumbnailCache_Evicts(t *testing.T) {
	c, err := NewThumbnailCache(2)
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	c.Add("a", img)
	c.Add("b", img)
	c.Add("c", img)
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	c.Add("d", nil)
	assert.Equal(t, 2, c.Len())

	c.Remove("c")
	_, ok = c.Get("c")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestThumbnailCache_DefaultSize(t *testing.T) {
	c, err := NewThumbnailCache(0)
	require.NoError(t, err)
	for i := 0; i < DefaultThumbnailCacheSize+5; i++ {
		c.Add(capture.AssetRef(string(rune('a'+i%26))+string(rune('0'+i/26))), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	assert.Equal(t, DefaultThumbnailCacheSize, c.Len())
}
