package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// The OOXML family (.docx, .xlsx, .pptx) is a ZIP of XML parts; the
// text lives in <w:t>, <t>, and <a:t> elements respectively. Legacy
// binary variants (.doc, .xls, .ppt) have no parser here and degrade
// to a metadata-only skip.

// extractDocx reads paragraph text from word/document.xml.
func extractDocx(ctx context.Context, path string) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) != ".docx" {
		return nil, fmt.Errorf("%w: legacy binary Word format", util.ErrUnsupported)
	}

	text, err := zipPartText(path, func(name string) bool {
		return name == "word/document.xml"
	}, "t", "p")
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

// extractXlsx reads cell text from the shared string table. Numeric
// cell values carry no keyword signal and are not collected.
func extractXlsx(ctx context.Context, path string) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return nil, fmt.Errorf("%w: legacy binary Excel format", util.ErrUnsupported)
	}

	text, err := zipPartText(path, func(name string) bool {
		return name == "xl/sharedStrings.xml"
	}, "t", "si")
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

// extractPptx reads text runs from every slide part.
func extractPptx(ctx context.Context, path string) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pptx" {
		return nil, fmt.Errorf("%w: legacy binary PowerPoint format", util.ErrUnsupported)
	}

	text, err := zipPartText(path, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	}, "t", "p")
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

// zipPartText opens an OOXML archive, streams the XML parts selected
// by match (in archive-name order, so slides come out in sequence),
// and collects character data inside textTag elements. Closing a
// breakTag element emits a line break.
func zipPartText(path string, match func(string) bool, textTag, breakTag string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: open archive: %v", util.ErrExtractFailed, err)
	}
	defer zr.Close()

	var parts []*zip.File
	for _, f := range zr.File {
		if match(f.Name) {
			parts = append(parts, f)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no document part found", util.ErrExtractFailed)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })

	var sb strings.Builder
	for _, part := range parts {
		rc, err := part.Open()
		if err != nil {
			return "", fmt.Errorf("%w: open %s: %v", util.ErrExtractFailed, part.Name, err)
		}
		if err := collectXMLText(rc, textTag, breakTag, &sb); err != nil {
			rc.Close()
			return "", fmt.Errorf("%w: parse %s: %v", util.ErrExtractFailed, part.Name, err)
		}
		rc.Close()
	}

	return strings.TrimSpace(sb.String()), nil
}

// collectXMLText appends the character data of every textTag element
// in the stream to sb.
func collectXMLText(r io.Reader, textTag, breakTag string, sb *strings.Builder) error {
	decoder := xml.NewDecoder(r)
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textTag {
				inText = true
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textTag:
				inText = false
				sb.WriteByte(' ')
			case breakTag:
				sb.WriteByte('\n')
			}
		}
	}
}
