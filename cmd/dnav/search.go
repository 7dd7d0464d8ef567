package main

import (
	"fmt"
	"strings"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the index",
	Long: `Search the index by filename substring, year, category and keywords.

Filters combine with AND; multiple values for one filter match any of
them. Keywords match against both the mined keywords and the summary,
case-insensitively. With no filters, every indexed file is listed.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("filename", "f", "", "filename substring")
	searchCmd.Flags().IntSliceP("year", "y", nil, "category year (repeatable)")
	searchCmd.Flags().StringSliceP("type", "t", nil, "category type (repeatable)")
	searchCmd.Flags().StringSliceP("keyword", "k", nil, "keyword (repeatable, any may match)")
	searchCmd.Flags().Bool("summaries", false, "print summaries with each hit")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("filename")
	years, _ := cmd.Flags().GetIntSlice("year")
	types, _ := cmd.Flags().GetStringSlice("type")
	keywords, _ := cmd.Flags().GetStringSlice("keyword")
	showSummaries, _ := cmd.Flags().GetBool("summaries")

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	db, err := store.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := db.Query(store.Filters{
		FilenameSubstring: filename,
		Years:             years,
		Types:             types,
		Keywords:          keywords,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No matching files.")
		return nil
	}

	for _, r := range records {
		year := "----"
		if r.CategoryYear != 0 {
			year = fmt.Sprintf("%d", r.CategoryYear)
		}
		fmt.Printf("%s  [%s, %s]\n", r.Path, r.CategoryType, year)
		if len(r.Keywords) > 0 {
			fmt.Printf("    keywords: %s\n", strings.Join(r.Keywords, ", "))
		}
		if showSummaries && r.Summary != "" {
			fmt.Printf("    %s\n", r.Summary)
		}
	}
	fmt.Printf("\n%d file(s)\n", len(records))
	return nil
}
