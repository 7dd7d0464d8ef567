package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// extractArchive lists member filenames of an archive; the names feed
// the keyword miner so "Jahresbericht_2019.pdf inside alt.zip" stays
// findable. No member content is extracted. Formats without a stdlib
// reader (rar, 7z) degrade to a skip.
func extractArchive(ctx context.Context, path string) (*Result, error) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return listZipMembers(path)
	case strings.HasSuffix(name, ".tar"):
		return listTarMembers(path, false)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return listTarMembers(path, true)
	default:
		return nil, fmt.Errorf("%w: no reader for this archive format", util.ErrUnsupported)
	}
}

func listZipMembers(path string) (*Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open zip: %v", util.ErrExtractFailed, err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, "/") {
			names = append(names, filepath.Base(f.Name))
		}
	}
	return &Result{Text: strings.Join(names, "\n")}, nil
}

func listTarMembers(path string, gzipped bool) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExtractFailed, err)
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", util.ErrExtractFailed, err)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: tar: %v", util.ErrExtractFailed, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			names = append(names, filepath.Base(hdr.Name))
		}
	}
	return &Result{Text: strings.Join(names, "\n")}, nil
}
