package main

import (
	"context"
	"fmt"
	"time"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/extract"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/index"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/report"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/summarize"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var indexCmd = &cobra.Command{
	Use:   "index [root]",
	Short: "Crawl the archive and build the search index",
	Long: `Walk the archive root and write one index row per file.

Text is extracted where a strategy exists for the file's category,
then mined for keywords and a short summary. Files whose content
cannot be read still get a row, with a status recording what went
wrong. Re-running the index against the same tree is safe: rows are
keyed by relative path and updated in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntP("concurrency", "c", 8, "number of extraction workers")
	indexCmd.Flags().Bool("skip-unchanged", false, "skip files whose size and mtime are unchanged")
	indexCmd.Flags().Bool("network-db", false, "tune SQLite for a database on a network filesystem")
	indexCmd.Flags().Bool("ocr", true, "OCR images when tesseract is available")
	indexCmd.Flags().String("ocr-lang", "eng", "tesseract language")
	indexCmd.Flags().String("language", "english", "stop word language for keyword mining (english or german)")

	viper.BindPFlag("concurrency", indexCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("network-db", indexCmd.Flags().Lookup("network-db"))
	viper.BindPFlag("ocr", indexCmd.Flags().Lookup("ocr"))
	viper.BindPFlag("ocr-lang", indexCmd.Flags().Lookup("ocr-lang"))
	viper.BindPFlag("language", indexCmd.Flags().Lookup("language"))

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root := viper.GetString("root")
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		return fmt.Errorf("%w: archive root is required (pass it as an argument or set root in config)", util.ErrInvalidConfig)
	}

	concurrency := viper.GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = 8
	}
	networkDB := viper.GetBool("network-db")
	ocrEnabled := viper.GetBool("ocr")
	ocrLang := viper.GetString("ocr-lang")
	language := viper.GetString("language")
	skipUnchanged, _ := cmd.Flags().GetBool("skip-unchanged")

	dbPath := viper.GetString("db")
	verbose := viper.GetBool("verbose")
	quiet := viper.GetBool("quiet")

	util.SetVerbose(verbose)
	util.SetQuiet(quiet)

	util.InfoLog("Opening database: %s", dbPath)
	db, err := store.OpenWithOptions(dbPath, &store.OpenOptions{NetworkOptimized: networkDB})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logLevel := report.LevelInfo
	if quiet {
		logLevel = report.LevelWarning
	} else if verbose {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger("artifacts", logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		logger = report.NullLogger()
	}
	defer logger.Close()

	if logger.Path() != "" {
		util.InfoLog("Event log: %s", logger.Path())
	}

	caps := extract.Capabilities{}
	if ocrEnabled {
		caps = extract.ProbeCapabilities()
	}

	registry := extract.NewRegistry(&extract.Config{
		Capabilities: caps,
		OCRLanguage:  ocrLang,
		Logger:       logger,
	})

	indexer := index.New(&index.Config{
		Store:         db,
		Registry:      registry,
		Miner:         summarize.New(&summarize.Config{Language: language}),
		Root:          root,
		Concurrency:   concurrency,
		SkipUnchanged: skipUnchanged,
		Logger:        logger,
	})

	util.InfoLog("Root: %s", root)
	util.InfoLog("Concurrency: %d", concurrency)

	start := time.Now()
	result, err := indexer.Run(ctx)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	duration := time.Since(start)

	util.SuccessLog("Indexing complete in %v", duration.Round(time.Millisecond))
	util.InfoLog("  Files found: %d", result.FilesFound)
	util.InfoLog("  Files indexed: %d", result.FilesIndexed)
	if result.SkippedUnchanged > 0 {
		util.InfoLog("  Unchanged (skipped): %d", result.SkippedUnchanged)
	}
	if result.SkippedHidden > 0 {
		util.InfoLog("  Hidden (skipped): %d", result.SkippedHidden)
	}
	if result.SkippedUnread > 0 {
		util.WarnLog("  Unreadable (skipped): %d", result.SkippedUnread)
	}
	if result.ExtractSkipped > 0 {
		util.InfoLog("  Indexed without text: %d", result.ExtractSkipped)
	}
	if result.ExtractFailed > 0 {
		util.WarnLog("  Extraction failures: %d", result.ExtractFailed)
	}
	if len(result.Errors) > 0 {
		util.WarnLog("  Errors: %d", len(result.Errors))
	}

	total, _ := db.Count()
	util.InfoLog("")
	util.InfoLog("Index now holds %d files", total)
	util.InfoLog("Next step: dnav search -k <keyword>")

	return nil
}
