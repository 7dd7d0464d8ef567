package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	util.SetQuiet(viper.GetBool("quiet"))

	db, err := store.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	total, err := db.Count()
	if err != nil {
		return fmt.Errorf("failed to count files: %w", err)
	}
	totalSize, err := db.TotalSizeBytes()
	if err != nil {
		return fmt.Errorf("failed to sum sizes: %w", err)
	}

	fmt.Printf("Indexed files: %d (%s)\n", total, humanize.Bytes(uint64(totalSize)))

	skipped, _ := db.CountByStatus(store.StatusExtractSkipped)
	failed, _ := db.CountByStatus(store.StatusExtractFailed)
	if skipped > 0 {
		fmt.Printf("  without extracted text: %d\n", skipped)
	}
	if failed > 0 {
		fmt.Printf("  with extraction failures: %d\n", failed)
	}

	counts, types, err := db.TypeCounts()
	if err != nil {
		return fmt.Errorf("failed to load type counts: %w", err)
	}
	if len(types) > 0 {
		fmt.Println("\nBy category:")
		for _, typ := range types {
			fmt.Printf("  %-20s %d\n", typ, counts[typ])
		}
	}

	years, err := db.DistinctYears()
	if err != nil {
		return fmt.Errorf("failed to load years: %w", err)
	}
	if len(years) > 0 {
		fmt.Print("\nYears: ")
		for i, y := range years {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(y)
		}
		fmt.Println()
	}

	return nil
}
