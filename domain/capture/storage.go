package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the subdirectory of the user's pictures directory holding captures.
const AppDirName = "vacation-cam"

// DirStorage stores pictures in a fixed directory, created on first use.
type DirStorage struct {
	Dir string
}

// NewStorage returns storage rooted at dir. An empty dir selects the
// application folder inside the user's XDG pictures directory.
func NewStorage(dir string) *DirStorage {
	if dir == "" {
		dir = filepath.Join(xdg.UserDirs.Pictures, AppDirName)
	}
	return &DirStorage{Dir: dir}
}

// PicturesDir ensures the directory exists and is writable.
func (s *DirStorage) PicturesDir() (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create pictures dir: %w", err)
	}
	if err := CheckWritable(s.Dir); err != nil {
		return "", err
	}
	return s.Dir, nil
}
