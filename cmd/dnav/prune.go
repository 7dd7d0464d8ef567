package main

import (
	"context"
	"fmt"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/index"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/report"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [root]",
	Short: "Remove index rows for files that no longer exist",
	Long: `Check every indexed path against the archive root and delete rows
whose file has been removed. Files that exist but were never indexed
are left for the next index run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().Bool("dry-run", false, "report stale rows without deleting them")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root := viper.GetString("root")
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		return fmt.Errorf("%w: archive root is required (pass it as an argument or set root in config)", util.ErrInvalidConfig)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	dbPath := viper.GetString("db")

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger, err := report.NewEventLogger("artifacts", report.LevelInfo)
	if err != nil {
		logger = report.NullLogger()
	}
	defer logger.Close()

	n, err := index.Prune(ctx, db, root, dryRun, logger)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	if dryRun {
		fmt.Printf("%d stale entries (dry run, nothing deleted)\n", n)
	} else {
		fmt.Printf("%d stale entries removed\n", n)
	}
	return nil
}
