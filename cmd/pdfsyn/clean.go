package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the diagnostics disk cache",
	Long:  "Remove every entry of the disk cache used by `pdfsyn diag --disk-cache`.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	disk, err := openDiskCache(cfg.Driver.CacheDir)
	if err != nil {
		return err
	}
	if err := disk.DropAll(); err != nil {
		return fmt.Errorf("failed to clean %s: %w", disk.Dir(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", disk.Dir())
	return nil
}
