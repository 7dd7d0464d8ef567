// Package thumb maintains a flat on-disk cache of JPEG thumbnails for
// indexed images. Cache keys embed the content fingerprint, so a
// modified source image produces a fresh thumbnail and the stale one
// is removed.
package thumb

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/draw"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

const (
	defaultMaxEdge = 256
	jpegQuality    = 85
	thumbSuffix    = "_thumb.jpg"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Cache stores generated thumbnails under a single directory.
type Cache struct {
	dir     string
	maxEdge int
}

// NewCache creates the cache directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache dir: %w", err)
	}
	return &Cache{dir: dir, maxEdge: defaultMaxEdge}, nil
}

// key flattens a relative path into a single safe filename and binds
// it to the source fingerprint.
func (c *Cache) key(relPath, fingerprint string) string {
	safe := unsafeChars.ReplaceAllString(relPath, "_")
	return safe + "_" + fingerprint + thumbSuffix
}

// GetOrCreate returns the thumbnail bytes for the image at absPath,
// generating and caching them on a miss. Stale thumbnails for the
// same source path with a different fingerprint are removed.
func (c *Cache) GetOrCreate(absPath, relPath, fingerprint string) ([]byte, error) {
	target := filepath.Join(c.dir, c.key(relPath, fingerprint))

	if data, err := os.ReadFile(target); err == nil {
		return data, nil
	}

	src, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrThumbnailUnavailable, err)
	}
	img, _, err := image.Decode(src)
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", util.ErrThumbnailUnavailable, err)
	}

	scaled := c.scale(img)

	tmp, err := os.CreateTemp(c.dir, ".thumb-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp thumbnail: %w", err)
	}
	tmpName := tmp.Name()
	if err := jpeg.Encode(tmp, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("%w: encode: %v", util.ErrThumbnailUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("failed to write thumbnail: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	c.removeStale(relPath, fingerprint)

	return os.ReadFile(target)
}

// scale fits img into a maxEdge square, preserving aspect ratio.
// Images already small enough pass through at original size.
func (c *Cache) scale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= c.maxEdge && h <= c.maxEdge {
		return img
	}
	if w >= h {
		h = h * c.maxEdge / w
		w = c.maxEdge
		if h < 1 {
			h = 1
		}
	} else {
		w = w * c.maxEdge / h
		h = c.maxEdge
		if w < 1 {
			w = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// removeStale deletes cached thumbnails for relPath generated from an
// older fingerprint. The remainder after the sanitized path must be
// exactly <fingerprint>_thumb.jpg; fingerprints never contain an
// underscore, so a sibling whose sanitized name shares the prefix is
// left alone.
func (c *Cache) removeStale(relPath, fingerprint string) {
	safe := unsafeChars.ReplaceAllString(relPath, "_")
	current := c.key(relPath, fingerprint)

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if name == current || !strings.HasSuffix(name, thumbSuffix) {
			continue
		}
		rest, ok := strings.CutPrefix(name, safe+"_")
		if !ok {
			continue
		}
		fp := strings.TrimSuffix(rest, thumbSuffix)
		if fp == "" || strings.Contains(fp, "_") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			util.DebugLog("removed stale thumbnail %s", name)
		}
	}
}

// Clear removes every cached thumbnail.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read thumbnail cache dir: %w", err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), thumbSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear thumbnail cache: %w", err)
		}
	}
	return nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}
