package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// extractPlainText reads a text or code file. Archives hold decades
// of files; anything that is not valid UTF-8 is re-read as Latin-1,
// which cannot fail and keeps umlauts from older Windows exports
// mostly intact.
func extractPlainText(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExtractFailed, err)
	}

	if utf8.Valid(data) {
		return &Result{Text: string(data)}, nil
	}
	return &Result{Text: decodeLatin1(data)}, nil
}

// decodeLatin1 maps each byte to its equal code point.
func decodeLatin1(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}
