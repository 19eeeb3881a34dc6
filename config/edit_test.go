package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Set("map_zoom", " 12 "))
	require.NoError(t, cfg.Set("prompt_permissions", "off"))
	require.NoError(t, cfg.Set("camera_facing", "front"))
	require.NoError(t, cfg.Set("pictures_dir", "/srv/pics"))

	assert.Equal(t, "12", cfg.Get("map_zoom"))
	assert.Equal(t, "false", cfg.Get("prompt_permissions"))
	assert.Equal(t, "front", cfg.Get("camera_facing"))
	assert.Equal(t, "/srv/pics", cfg.Get("pictures_dir"))
}

func TestSet_Errors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Set("map_zoom", "near"))
	assert.Error(t, cfg.Set("debug", "maybe"))
	assert.Error(t, cfg.Set("selection_x", "1"))
	assert.Equal(t, 15, cfg.MapZoom)
	assert.False(t, cfg.Debug)
}

func TestEditableKeysRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range Editable {
		require.NoError(t, cfg.Set(key, cfg.Get(key)), key)
	}
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyGeometry(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ApplyGeometry("1024x700+10+-20"))
	assert.Equal(t, 1024, cfg.WindowWidth)
	assert.Equal(t, 700, cfg.WindowHeight)

	assert.False(t, cfg.ApplyGeometry("bogus"))
	assert.False(t, cfg.ApplyGeometry("0x10+0+0"))
	assert.Equal(t, 1024, cfg.WindowWidth)
}
