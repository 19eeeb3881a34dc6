package naming

import (
	"path/filepath"
	"regexp"
	"time"
)

const (
	// Layout renders year, month, day, hour, minute and second with no separators.
	Layout = "20060102150405"
	// Extension is appended to every generated picture name.
	Extension = ".jpg"
)

var namePattern = regexp.MustCompile(`^\d{14}\.jpg$`)

// FileName returns the picture file name for t. Names are unique at second granularity.
func FileName(t time.Time) string {
	return t.Format(Layout) + Extension
}

// PicturePath joins dir with the file name generated for t.
func PicturePath(dir string, t time.Time) string {
	return filepath.Join(dir, FileName(t))
}

// Valid reports whether name has the shape produced by FileName.
func Valid(name string) bool {
	return namePattern.MatchString(name)
}
