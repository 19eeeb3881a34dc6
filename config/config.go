package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VACATIONCAM_PICTURES_DIR.
const EnvPrefix = "VACATIONCAM"

// Config holds runtime configuration for the camera app.
// Fields may be loaded from a JSON file, overridden by the environment and then by command-line flags.
type Config struct {
	Debug bool `json:"debug" mapstructure:"debug"`

	// Capture
	PicturesDir  string `json:"pictures_dir" mapstructure:"pictures_dir"` // empty => XDG pictures dir
	CameraFacing string `json:"camera_facing" mapstructure:"camera_facing"`

	// Map
	TileSource string `json:"tile_source" mapstructure:"tile_source"`
	MapZoom    int    `json:"map_zoom" mapstructure:"map_zoom"`
	MapWidth   int    `json:"map_width" mapstructure:"map_width"`
	MapHeight  int    `json:"map_height" mapstructure:"map_height"`

	// Thumbnails
	ThumbnailSize      int `json:"thumbnail_size" mapstructure:"thumbnail_size"`
	ThumbnailCacheSize int `json:"thumbnail_cache_size" mapstructure:"thumbnail_cache_size"`

	// Behaviour
	PromptPermissions    bool `json:"prompt_permissions" mapstructure:"prompt_permissions"`
	ShowReturnAffordance bool `json:"show_return_affordance" mapstructure:"show_return_affordance"`

	// Window
	WindowWidth  int `json:"window_width" mapstructure:"window_width"`
	WindowHeight int `json:"window_height" mapstructure:"window_height"`
	TickMillis   int `json:"tick_millis" mapstructure:"tick_millis"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                false,
		PicturesDir:          "",
		CameraFacing:         "back",
		TileSource:           "MAPNIK",
		MapZoom:              15,
		MapWidth:             480,
		MapHeight:            320,
		ThumbnailSize:        160,
		ThumbnailCacheSize:   64,
		PromptPermissions:    true,
		ShowReturnAffordance: true,
		WindowWidth:          800,
		WindowHeight:         600,
		TickMillis:           100,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	c.CameraFacing = strings.ToLower(strings.TrimSpace(c.CameraFacing))
	if c.CameraFacing != "back" && c.CameraFacing != "front" {
		c.CameraFacing = d.CameraFacing
	}
	c.TileSource = strings.TrimSpace(c.TileSource)
	if c.TileSource == "" {
		c.TileSource = d.TileSource
	}
	c.MapZoom = clamp(c.MapZoom, 0, 19)
	if c.MapWidth < 64 {
		c.MapWidth = d.MapWidth
	}
	if c.MapHeight < 64 {
		c.MapHeight = d.MapHeight
	}
	if c.ThumbnailSize <= 0 {
		c.ThumbnailSize = d.ThumbnailSize
	}
	c.ThumbnailSize = clamp(c.ThumbnailSize, 32, 1024)
	if c.ThumbnailCacheSize <= 0 {
		c.ThumbnailCacheSize = d.ThumbnailCacheSize
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = d.WindowHeight
	}
	if c.TickMillis <= 0 {
		c.TickMillis = d.TickMillis
	}
	c.TickMillis = clamp(c.TickMillis, 10, 1000)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultPath returns $XDG_CONFIG_HOME/vacation-cam/config.json, creating the directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("vacation-cam", "config.json"))
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("pictures_dir", d.PicturesDir)
	v.SetDefault("camera_facing", d.CameraFacing)
	v.SetDefault("tile_source", d.TileSource)
	v.SetDefault("map_zoom", d.MapZoom)
	v.SetDefault("map_width", d.MapWidth)
	v.SetDefault("map_height", d.MapHeight)
	v.SetDefault("thumbnail_size", d.ThumbnailSize)
	v.SetDefault("thumbnail_cache_size", d.ThumbnailCacheSize)
	v.SetDefault("prompt_permissions", d.PromptPermissions)
	v.SetDefault("show_return_affordance", d.ShowReturnAffordance)
	v.SetDefault("window_width", d.WindowWidth)
	v.SetDefault("window_height", d.WindowHeight)
	v.SetDefault("tick_millis", d.TickMillis)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
	}
	return v
}

// Load reads configuration from the given JSON file path with environment overrides.
// A missing file (or empty path) yields defaults plus environment. On a parse error it
// returns defaults with the error.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
