package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"biblefetch/internal/region"
	"biblefetch/internal/sorted"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var skipRegions bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Package downloaded content into distribution archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if err := os.MkdirAll(cfg.Paths.ExportDir, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}

			allZip := filepath.Join(cfg.Paths.ExportDir, "ALL-langs-data.zip")
			count, err := region.Archive(cfg.Paths.DownloadsDir, allZip, includeInExport)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Archived %d files into %s\n", count, allZip)

			if skipRegions {
				return nil
			}

			regions, err := region.ParseConfig(cfg.Paths.RegionsPath)
			if err != nil {
				return err
			}
			if len(regions) == 0 {
				fmt.Fprintln(out, "No regions configured; skipping region archives")
				return nil
			}

			if err := region.WriteMetadata(regions,
				filepath.Join(cfg.Paths.ExportDir, "regions.json"),
				filepath.Join(cfg.Paths.ExportDir, "regions.zip"),
			); err != nil {
				return err
			}

			regionsDir := filepath.Join(cfg.Paths.ExportDir, "regions")
			if err := os.MkdirAll(regionsDir, 0o755); err != nil {
				return fmt.Errorf("create regions directory: %w", err)
			}

			summary, err := regionSummary(cfg.Paths.SortedDir)
			if err != nil {
				return err
			}

			for _, r := range regions {
				isos := make(map[string]struct{}, len(r.Languages))
				for _, iso := range r.Languages {
					isos[iso] = struct{}{}
				}
				extra := map[string][]byte{}
				if summary != nil {
					extra["summary.json"] = summary
				}
				dst := filepath.Join(regionsDir, r.ID()+".zip")
				copied, err := region.FilterZip(allZip, dst, isos, extra)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Region %s: %d entries (%d languages)\n", r.ID(), copied, len(r.Languages))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipRegions, "skip-regions", false, "Only build the combined archive")
	return cmd
}

// includeInExport keeps testament trees out of internal scratch space: only
// nt/ and ot/ content plus the root summary ship.
func includeInExport(rel string) bool {
	if rel == "summary.json" {
		return true
	}
	top, _, _ := strings.Cut(rel, "/")
	return top == "nt" || top == "ot"
}

// regionSummary embeds the sort summary in each region archive when one
// exists; a missing summary is not an error.
func regionSummary(sortedDir string) ([]byte, error) {
	summary, err := sorted.LoadSummary(sortedDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return json.Marshal(summary)
}
