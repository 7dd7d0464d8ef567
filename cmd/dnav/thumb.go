package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DimitriGeelen/DenkraumNavigator/internal/index"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/store"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/thumb"
	"github.com/DimitriGeelen/DenkraumNavigator/internal/util"
)

var thumbCmd = &cobra.Command{
	Use:   "thumb <indexed-path>",
	Short: "Generate or fetch the cached thumbnail for an indexed image",
	Long: `Look up an indexed image by its relative path and produce a JPEG
thumbnail, serving the cached copy when the file is unchanged. The
thumbnail is written to --out, or next to the cache by default.`,
	Args: cobra.ExactArgs(1),
	RunE: runThumb,
}

func init() {
	thumbCmd.Flags().String("root", "", "archive root (defaults to root from config)")
	thumbCmd.Flags().String("cache-dir", "thumbnails", "thumbnail cache directory")
	thumbCmd.Flags().StringP("out", "o", "", "write the thumbnail to this file")
	rootCmd.AddCommand(thumbCmd)
}

func runThumb(cmd *cobra.Command, args []string) error {
	relPath := args[0]

	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = viper.GetString("root")
	}
	if root == "" {
		return fmt.Errorf("%w: archive root is required (use --root or set root in config)", util.ErrInvalidConfig)
	}

	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	out, _ := cmd.Flags().GetString("out")

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	db, err := store.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rec, err := db.GetByPath(relPath)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("not in index: %s", relPath)
	}

	abs, err := index.ResolvePath(root, rec.Path)
	if err != nil {
		return err
	}

	cache, err := thumb.NewCache(cacheDir)
	if err != nil {
		return err
	}

	data, err := cache.GetOrCreate(abs, rec.Path, rec.Fingerprint)
	if err != nil {
		return fmt.Errorf("thumbnail failed: %w", err)
	}

	if out == "" {
		util.SuccessLog("Thumbnail cached under %s (%d bytes)", cache.Dir(), len(data))
		return nil
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	util.SuccessLog("Thumbnail written to %s (%d bytes)", out, len(data))
	return nil
}
