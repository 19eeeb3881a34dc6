package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Editable lists the keys Set accepts, in display order.
var Editable = []string{
	"pictures_dir",
	"camera_facing",
	"tile_source",
	"map_zoom",
	"thumbnail_size",
	"prompt_permissions",
	"show_return_affordance",
	"debug",
}

// Get returns the textual value of key.
func (c *Config) Get(key string) string {
	switch key {
	case "pictures_dir":
		return c.PicturesDir
	case "camera_facing":
		return c.CameraFacing
	case "tile_source":
		return c.TileSource
	case "map_zoom":
		return strconv.Itoa(c.MapZoom)
	case "thumbnail_size":
		return strconv.Itoa(c.ThumbnailSize)
	case "prompt_permissions":
		return strconv.FormatBool(c.PromptPermissions)
	case "show_return_affordance":
		return strconv.FormatBool(c.ShowReturnAffordance)
	case "debug":
		return strconv.FormatBool(c.Debug)
	}
	return ""
}

// Set parses value into the field named key. Values are not clamped; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "pictures_dir":
		c.PicturesDir = value
	case "camera_facing":
		c.CameraFacing = value
	case "tile_source":
		c.TileSource = value
	case "map_zoom":
		return setInt(key, value, &c.MapZoom)
	case "thumbnail_size":
		return setInt(key, value, &c.ThumbnailSize)
	case "prompt_permissions":
		return setBool(key, value, &c.PromptPermissions)
	case "show_return_affordance":
		return setBool(key, value, &c.ShowReturnAffordance)
	case "debug":
		return setBool(key, value, &c.Debug)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func setInt(key, s string, dst *int) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = i
	return nil
}

func setBool(key, s string, dst *bool) error {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "on", "t":
		*dst = true
	case "false", "0", "no", "n", "off", "f":
		*dst = false
	default:
		return fmt.Errorf("%s: not a boolean: %q", key, s)
	}
	return nil
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)[+-]-?\d+[+-]-?\d+$`)

// ApplyGeometry stores the window size from a Tk geometry string. It reports whether
// the string was understood.
func (c *Config) ApplyGeometry(g string) bool {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 3 {
		return false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w <= 0 || h <= 0 {
		return false
	}
	c.WindowWidth, c.WindowHeight = w, h
	return true
}
