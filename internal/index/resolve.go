package index

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// ResolvePath maps a stored relative path back to an absolute path
// under root. Paths that would escape the root are rejected before
// touching the filesystem.
func ResolvePath(root, relPath string) (string, error) {
	native := filepath.FromSlash(relPath)
	if filepath.IsAbs(native) || !filepath.IsLocal(native) {
		return "", fmt.Errorf("%w: %s", util.ErrOutsideRoot, relPath)
	}

	abs := filepath.Join(root, native)
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", util.ErrNotFound, relPath)
		}
		return "", fmt.Errorf("failed to stat %s: %w", relPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", util.ErrNotFound, relPath)
	}
	return abs, nil
}
