package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

// extractAudioTags reads embedded tag metadata from an audio file.
// Title/artist/album text feeds the keyword miner and the tag year
// feeds year classification. A file without readable tags is normal,
// not a failure.
func extractAudioTags(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExtractFailed, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return &Result{}, nil
	}

	var parts []string
	for _, s := range []string{m.Title(), m.Artist(), m.AlbumArtist(), m.Album(), m.Genre(), m.Comment()} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	return &Result{
		Text: strings.Join(parts, "\n"),
		Year: m.Year(),
	}, nil
}
