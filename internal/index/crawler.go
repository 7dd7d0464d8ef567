package index

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// Entry is one regular file discovered under the archive root. RelPath
// is slash-separated and relative to the root; it is the natural key
// in the index.
type Entry struct {
	AbsPath   string
	RelPath   string
	Filename  string
	Extension string
}

// crawl walks the tree under root and sends an Entry for every
// regular, non-hidden file. Hidden files and directories (dot-prefixed
// names) are skipped and counted. Access errors are logged and the
// walk continues.
func crawl(ctx context.Context, root string, entries chan<- Entry, found, hidden *atomic.Int64, onError func(error)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			util.WarnLog("Error accessing path %s: %v", path, err)
			onError(err)
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			hidden.Add(1)
			return nil
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			onError(err)
			return nil
		}

		found.Add(1)
		entry := Entry{
			AbsPath:   path,
			RelPath:   filepath.ToSlash(rel),
			Filename:  name,
			Extension: strings.ToLower(filepath.Ext(name)),
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}
