//go:build unix

package capture

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckWritable reports ErrNotWritable when dir cannot be written by this process.
func CheckWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return fmt.Errorf("%s: %w (%v)", dir, ErrNotWritable, err)
	}
	return nil
}
