// Package extract maps file categories to content-extraction
// strategies. Strategies that depend on an optional engine degrade to
// a skip for the whole run when the engine is missing; per-file
// failures are reported to the caller, never raised as panics.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/classify"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/report"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

const (
	defaultOCRTimeout  = 30 * time.Second
	defaultMaxFileSize = 100 * 1024 * 1024
)

// Capabilities records which optional engines are present. Probed
// once at startup; strategies consult the flags instead of re-probing
// per file.
type Capabilities struct {
	OCR       bool
	OCRBinary string
}

// ProbeCapabilities checks optional engines on PATH.
func ProbeCapabilities() Capabilities {
	caps := Capabilities{}
	if path, err := exec.LookPath("tesseract"); err == nil {
		caps.OCR = true
		caps.OCRBinary = path
	}
	return caps
}

// Result is the outcome of a successful extraction. Text may be
// empty (a tagless audio file, an image OCR'd to nothing). Year is
// taken from document metadata when the format carries one; 0 means
// unknown.
type Result struct {
	Text string
	Year int
}

// strategy extracts text from one file.
type strategy func(ctx context.Context, path string) (*Result, error)

// Config holds registry configuration
type Config struct {
	Capabilities Capabilities
	OCRTimeout   time.Duration
	OCRLanguage  string
	MaxFileSize  int64
	Logger       *report.EventLogger
}

// Registry dispatches extraction by category.
type Registry struct {
	cfg        Config
	strategies map[classify.Category]strategy
	ocrOnce    sync.Once
}

// NewRegistry creates a Registry
func NewRegistry(cfg *Config) *Registry {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = defaultOCRTimeout
	}
	if cfg.OCRLanguage == "" {
		cfg.OCRLanguage = "eng"
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaultMaxFileSize
	}
	if cfg.Logger == nil {
		cfg.Logger = report.NullLogger()
	}

	r := &Registry{cfg: *cfg}
	r.strategies = map[classify.Category]strategy{
		classify.PDF:        extractPDF,
		classify.Word:       extractDocx,
		classify.Excel:      extractXlsx,
		classify.PowerPoint: extractPptx,
		classify.Text:       extractPlainText,
		classify.Code:       extractPlainText,
		classify.Archive:    extractArchive,
		classify.Image:      r.extractImage,
		classify.Audio:      extractAudioTags,
		// Video and Other carry no text; no strategy registered.
	}
	return r
}

// CanExtract reports whether a strategy is registered for cat.
func (r *Registry) CanExtract(cat classify.Category) bool {
	_, ok := r.strategies[cat]
	return ok
}

// Extract runs the strategy registered for cat against path.
// Error contract, checked with errors.Is:
//   - util.ErrUnsupported: no strategy, or a legacy binary variant;
//     the file is still indexed, with empty text fields
//   - util.ErrCapabilityUnavailable: optional engine missing for the run
//   - util.ErrExtractFailed: this file is corrupt/unreadable as its type
func (r *Registry) Extract(ctx context.Context, path string, cat classify.Category) (*Result, error) {
	strat, ok := r.strategies[cat]
	if !ok {
		return nil, util.ErrUnsupported
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExtractFailed, err)
	}
	if info.Size() > r.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: file too large (%d bytes)", util.ErrUnsupported, info.Size())
	}

	return strat(ctx, path)
}

// extractImage OCRs an image through the external tesseract binary.
// Without the engine, every image for the rest of the run degrades to
// a skip; the downgrade is logged once.
func (r *Registry) extractImage(ctx context.Context, path string) (*Result, error) {
	if !r.cfg.Capabilities.OCR {
		r.ocrOnce.Do(func() {
			r.cfg.Logger.LogCapability("ocr", "tesseract not found in PATH, image text extraction disabled")
			util.WarnLog("tesseract not found in PATH - indexing images without text")
		})
		return nil, util.ErrCapabilityUnavailable
	}

	tctx, cancel := context.WithTimeout(ctx, r.cfg.OCRTimeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, r.cfg.Capabilities.OCRBinary, path, "stdout", "-l", r.cfg.OCRLanguage)
	out, err := cmd.Output()
	if err != nil {
		if tctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: ocr timed out after %s", util.ErrExtractFailed, r.cfg.OCRTimeout)
		}
		return nil, fmt.Errorf("%w: ocr: %v", util.ErrExtractFailed, err)
	}
	return &Result{Text: string(out)}, nil
}
