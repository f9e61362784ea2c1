package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"biblefetch/internal/catalog"
	"biblefetch/internal/logging"
	"biblefetch/internal/sorted"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Classify the cached catalog into the sorted metadata tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.loggerValue()

			lock, err := ctx.acquireLock()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
				Dir:     cfg.Paths.LogDir,
				Pattern: "*.log",
			})

			snapshot, err := catalog.LoadSnapshot(cfg.Paths.CacheDir)
			if err != nil {
				return fmt.Errorf("load catalog cache: %w", err)
			}

			ledger, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = ledger.Close() }()

			sorter := sorted.NewSorter(cfg.Paths.SortedDir, logger, ledger)
			summary, err := sorter.Run(cmd.Context(), snapshot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Count"},
				[][]string{
					{"Languages", strconv.Itoa(summary.TotalLanguages)},
					{"Filesets", strconv.Itoa(summary.TotalFilesets)},
					{"Audio filesets", strconv.Itoa(summary.AudioFilesets)},
					{"Text filesets", strconv.Itoa(summary.TextFilesets)},
					{"Filesets with timing", strconv.Itoa(summary.FilesetsWithTiming)},
					{"Syncable pairs", strconv.Itoa(summary.SyncablePairs)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Sorted tree written to %s\n", cfg.Paths.SortedDir)
			return nil
		},
	}
}
