//go:build windows

package capture

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// CheckWritable reports ErrNotWritable when dir is missing or read-only.
func CheckWritable(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return fmt.Errorf("%s: %w (%v)", dir, ErrNotWritable, err)
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return fmt.Errorf("%s: %w (%v)", dir, ErrNotWritable, err)
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 {
		return fmt.Errorf("%s: %w", dir, ErrNotWritable)
	}
	return nil
}
