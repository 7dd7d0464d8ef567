package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/report"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

const pruneChunkSize = 500

// Prune removes rows whose file no longer exists under root. With
// dryRun set, stale rows are reported but kept. Returns the number of
// stale rows found.
func Prune(ctx context.Context, st *store.Store, root string, dryRun bool, logger *report.EventLogger) (int, error) {
	if logger == nil {
		logger = report.NullLogger()
	}

	info, err := os.Stat(root)
	if err != nil {
		return 0, fmt.Errorf("cannot access archive root: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("archive root is not a directory: %s", root)
	}

	paths, err := st.GetAllPaths()
	if err != nil {
		return 0, fmt.Errorf("failed to load indexed paths: %w", err)
	}
	util.InfoLog("Checking %d indexed paths against %s", len(paths), root)

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Pruning"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	stale := make([]string, 0)
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		if bar != nil {
			bar.Add(1)
		}

		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			// Unreadable is not gone; keep the row.
			util.WarnLog("Cannot check %s: %v", p, err)
			continue
		}
		stale = append(stale, p)
		logger.LogPrune(p)
		util.DebugLog("Stale entry: %s", p)
	}
	if bar != nil {
		bar.Finish()
	}

	if len(stale) == 0 {
		util.InfoLog("No stale entries found")
		return 0, nil
	}

	if dryRun {
		util.InfoLog("Dry run: %d stale entries would be removed", len(stale))
		return len(stale), nil
	}

	removed := 0
	for start := 0; start < len(stale); start += pruneChunkSize {
		end := start + pruneChunkSize
		if end > len(stale) {
			end = len(stale)
		}
		n, err := st.DeleteBatch(stale[start:end])
		if err != nil {
			return removed, fmt.Errorf("%w: %v", util.ErrStoreWrite, err)
		}
		removed += n
	}

	util.SuccessLog("Pruned %d stale entries", removed)
	return removed, nil
}
