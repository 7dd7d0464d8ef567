// Package index drives the crawl-extract-upsert pipeline and the
// cleanup pass that keeps the database in step with the archive on
// disk.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/pool"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/classify"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/extract"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/report"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/summarize"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

const batchSize = 500

// Indexer walks an archive root and writes one row per file.
type Indexer struct {
	store         *store.Store
	registry      *extract.Registry
	miner         *summarize.Miner
	root          string
	concurrency   int
	skipUnchanged bool
	logger        *report.EventLogger
}

// Config holds indexer configuration
type Config struct {
	Store         *store.Store
	Registry      *extract.Registry
	Miner         *summarize.Miner
	Root          string
	Concurrency   int
	SkipUnchanged bool
	Logger        *report.EventLogger
}

// New creates a new Indexer
func New(cfg *Config) *Indexer {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = report.NullLogger()
	}
	if cfg.Miner == nil {
		cfg.Miner = summarize.New(nil)
	}
	if cfg.Registry == nil {
		cfg.Registry = extract.NewRegistry(&extract.Config{
			Capabilities: extract.ProbeCapabilities(),
			Logger:       cfg.Logger,
		})
	}
	return &Indexer{
		store:         cfg.Store,
		registry:      cfg.Registry,
		miner:         cfg.Miner,
		root:          cfg.Root,
		concurrency:   cfg.Concurrency,
		skipUnchanged: cfg.SkipUnchanged,
		logger:        cfg.Logger,
	}
}

// Result summarizes one indexing run.
type Result struct {
	FilesFound       int
	FilesIndexed     int
	SkippedUnchanged int
	SkippedHidden    int
	SkippedUnread    int
	ExtractSkipped   int
	ExtractFailed    int
	Errors           []error
}

// Run executes a full pass over the archive root. Per-file failures
// degrade the row's status; only the root being unreachable or the
// batch writer failing ends the run.
func (ix *Indexer) Run(ctx context.Context) (*Result, error) {
	info, err := os.Stat(ix.root)
	if err != nil {
		return nil, fmt.Errorf("cannot access archive root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive root is not a directory: %s", ix.root)
	}

	util.InfoLog("Starting index of: %s", ix.root)

	result := &Result{}
	var errMu sync.Mutex
	addErr := func(err error) {
		errMu.Lock()
		result.Errors = append(result.Errors, err)
		errMu.Unlock()
	}

	// Pre-load fingerprints so unchanged files can be skipped without
	// touching their content.
	var known map[string]string
	if ix.skipUnchanged {
		known, err = ix.store.GetFingerprints()
		if err != nil {
			return nil, fmt.Errorf("failed to load fingerprints: %w", err)
		}
		util.InfoLog("Loaded %d existing fingerprints", len(known))
	}

	entries := make(chan Entry, 100)
	records := make(chan *store.FileRecord, batchSize)

	var found, indexed, skippedUnchanged, skippedHidden, skippedUnread atomic.Int64
	var extractSkipped, extractFailed atomic.Int64

	progressCtx, cancelProgress := context.WithCancel(ctx)
	defer cancelProgress()

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Indexing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-progressCtx.Done():
				return
			case <-ticker.C:
				f := found.Load()
				done := indexed.Load() + skippedUnchanged.Load() + skippedUnread.Load()
				if bar != nil && f > 0 {
					bar.Describe(fmt.Sprintf("Indexing | %d found | %d indexed | %d unchanged",
						f, indexed.Load(), skippedUnchanged.Load()))
					bar.Set64(done)
				} else if f > 0 {
					util.InfoLog("Progress: found %d files, indexed %d, unchanged %d",
						f, indexed.Load(), skippedUnchanged.Load())
				}
			}
		}
	}()

	// Single batch writer keeps all writes on one connection.
	writerErr := make(chan error, 1)
	var writerWg sync.WaitGroup
	writerWg.Add(1)
	go func() {
		defer writerWg.Done()
		batch := make([]*store.FileRecord, 0, batchSize)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		flush := func() {
			if len(batch) == 0 {
				return
			}
			if err := ix.store.UpsertBatch(batch); err != nil {
				util.ErrorLog("Failed to batch upsert records: %v", err)
				select {
				case writerErr <- fmt.Errorf("%w: %v", util.ErrStoreWrite, err):
				default:
				}
			}
			batch = batch[:0]
		}

		for {
			select {
			case rec, ok := <-records:
				if !ok {
					flush()
					return
				}
				batch = append(batch, rec)
				if len(batch) >= batchSize {
					flush()
				}
			case <-ticker.C:
				flush()
			case <-ctx.Done():
				flush()
				return
			}
		}
	}()

	workers := pool.New().WithMaxGoroutines(ix.concurrency)
	for i := 0; i < ix.concurrency; i++ {
		workers.Go(func() {
			for entry := range entries {
				select {
				case <-ctx.Done():
					return
				default:
				}

				rec, outcome, perr := ix.processEntry(ctx, entry, known)
				switch outcome {
				case outcomeUnreadable:
					skippedUnread.Add(1)
					addErr(perr)
					continue
				case outcomeUnchanged:
					skippedUnchanged.Add(1)
					continue
				case outcomeExtractSkipped:
					extractSkipped.Add(1)
				case outcomeExtractFailed:
					extractFailed.Add(1)
				}

				indexed.Add(1)
				select {
				case records <- rec:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	walkErr := crawl(ctx, ix.root, entries, &found, &skippedHidden, addErr)

	close(entries)
	workers.Wait()
	close(records)
	writerWg.Wait()
	cancelProgress()

	if bar != nil {
		bar.Finish()
	}

	select {
	case err := <-writerErr:
		return nil, err
	default:
	}

	result.FilesFound = int(found.Load())
	result.FilesIndexed = int(indexed.Load())
	result.SkippedUnchanged = int(skippedUnchanged.Load())
	result.SkippedHidden = int(skippedHidden.Load())
	result.SkippedUnread = int(skippedUnread.Load())
	result.ExtractSkipped = int(extractSkipped.Load())
	result.ExtractFailed = int(extractFailed.Load())

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return result, fmt.Errorf("walk error: %w", walkErr)
	}

	util.SuccessLog("Index complete: %d files found, %d indexed, %d unchanged, %d unreadable",
		result.FilesFound, result.FilesIndexed, result.SkippedUnchanged, result.SkippedUnread)

	return result, nil
}

type outcome int

const (
	outcomeIndexed outcome = iota
	outcomeUnreadable
	outcomeUnchanged
	outcomeExtractSkipped
	outcomeExtractFailed
)

// processEntry turns one discovered file into a row. A file that
// cannot even be stat'd gets no row and reports ErrUnreadable; every
// other outcome produces one, with the status recording how far
// extraction got.
func (ix *Indexer) processEntry(ctx context.Context, entry Entry, known map[string]string) (*store.FileRecord, outcome, error) {
	size, mtime, err := util.FileMetadata(entry.AbsPath)
	if err != nil {
		util.WarnLog("Skipping unreadable file %s: %v", entry.RelPath, err)
		ix.logger.LogSkip(entry.RelPath, "unreadable")
		return nil, outcomeUnreadable, fmt.Errorf("%w: %s: %v", util.ErrUnreadable, entry.RelPath, err)
	}

	fingerprint := util.Fingerprint(size, mtime)
	if known != nil && known[entry.RelPath] == fingerprint {
		util.DebugLog("Unchanged: %s", entry.RelPath)
		return nil, outcomeUnchanged, nil
	}

	cat := classify.ByExtension(entry.Extension)

	status := store.StatusIndexed
	out := outcomeIndexed
	var text, errMsg string
	var metaYear int

	res, err := ix.registry.Extract(ctx, entry.AbsPath, cat)
	switch {
	case err == nil:
		text = res.Text
		metaYear = res.Year
	case errors.Is(err, util.ErrUnsupported), errors.Is(err, util.ErrCapabilityUnavailable):
		status = store.StatusExtractSkipped
		out = outcomeExtractSkipped
		ix.logger.LogSkip(entry.RelPath, err.Error())
	default:
		status = store.StatusExtractFailed
		out = outcomeExtractFailed
		errMsg = err.Error()
		util.DebugLog("Extraction failed for %s: %v", entry.RelPath, err)
		ix.logger.LogExtractFailure(entry.RelPath, string(cat), err)
	}

	rec := &store.FileRecord{
		Path:         entry.RelPath,
		Filename:     entry.Filename,
		Extension:    entry.Extension,
		SizeBytes:    size,
		ModifiedUnix: mtime,
		Fingerprint:  fingerprint,
		CategoryType: string(cat),
		CategoryYear: classify.Year(entry.RelPath, metaYear, time.Unix(mtime, 0)),
		Status:       status,
		Error:        errMsg,
	}
	if text != "" {
		rec.Summary = ix.miner.Summary(text)
		rec.Keywords = ix.miner.Keywords(text)
	}

	if out == outcomeIndexed {
		ix.logger.LogIndexed(entry.RelPath, string(cat), status)
	}
	return rec, out, nil
}
