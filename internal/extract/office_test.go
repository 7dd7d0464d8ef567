package extract

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// writeZip builds a ZIP file from part name -> content.
func writeZip(t *testing.T, path string, parts map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
}

func TestExtractDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.docx")
	writeZip(t, path, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Meeting minutes</w:t></w:r></w:p>
    <w:p><w:r><w:t>Budget was approved.</w:t></w:r></w:p>
  </w:body>
</w:document>`,
		"[Content_Types].xml": `<Types/>`,
	})

	res, err := extractDocx(context.Background(), path)
	if err != nil {
		t.Fatalf("extractDocx failed: %v", err)
	}
	if !strings.Contains(res.Text, "Meeting minutes") || !strings.Contains(res.Text, "Budget was approved.") {
		t.Errorf("unexpected text: %q", res.Text)
	}
}

func TestExtractXlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	writeZip(t, path, map[string]string{
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t>Quarterly budget</t></si>
  <si><t>Marketing</t></si>
</sst>`,
	})

	res, err := extractXlsx(context.Background(), path)
	if err != nil {
		t.Fatalf("extractXlsx failed: %v", err)
	}
	if !strings.Contains(res.Text, "Quarterly budget") || !strings.Contains(res.Text, "Marketing") {
		t.Errorf("unexpected text: %q", res.Text)
	}
}

func TestExtractPptx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	writeZip(t, path, map[string]string{
		"ppt/slides/slide1.xml": `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="x">
  <a:p><a:r><a:t>Roadmap overview</a:t></a:r></a:p>
</p:sld>`,
		"ppt/slides/slide2.xml": `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="x">
  <a:p><a:r><a:t>Milestones for next year</a:t></a:r></a:p>
</p:sld>`,
	})

	res, err := extractPptx(context.Background(), path)
	if err != nil {
		t.Fatalf("extractPptx failed: %v", err)
	}
	// Slides come out in order.
	first := strings.Index(res.Text, "Roadmap overview")
	second := strings.Index(res.Text, "Milestones for next year")
	if first == -1 || second == -1 || first > second {
		t.Errorf("unexpected slide text/order: %q", res.Text)
	}
}

func TestLegacyBinaryFormatsAreUnsupported(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		fn   func(context.Context, string) (*Result, error)
	}{
		{"old.doc", extractDocx},
		{"old.xls", extractXlsx},
		{"old.ppt", extractPptx},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, []byte{0xd0, 0xcf, 0x11, 0xe0}, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := tc.fn(context.Background(), path)
		if !errors.Is(err, util.ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", tc.name, err)
		}
	}
}

func TestCorruptDocxIsExtractFailed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := extractDocx(context.Background(), path)
	if !errors.Is(err, util.ErrExtractFailed) {
		t.Errorf("expected ErrExtractFailed, got %v", err)
	}
}

func TestDocxMissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	writeZip(t, path, map[string]string{"[Content_Types].xml": `<Types/>`})

	_, err := extractDocx(context.Background(), path)
	if !errors.Is(err, util.ErrExtractFailed) {
		t.Errorf("expected ErrExtractFailed, got %v", err)
	}
}
