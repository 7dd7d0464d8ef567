package util

import (
	"crypto/sha1"
	"fmt"
	"os"
)

// Fingerprint derives a staleness key from a file's size and mtime.
// Two files with the same fingerprint are assumed unchanged; content
// is never read, so a fingerprint check is cheap enough to run on
// every crawl.
func Fingerprint(size int64, mtimeUnix int64) string {
	h := sha1.New()
	fmt.Fprintf(h, "%d:%d", size, mtimeUnix)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// FileMetadata extracts basic filesystem metadata
func FileMetadata(path string) (size int64, mtimeUnix int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size(), info.ModTime().Unix(), nil
}
