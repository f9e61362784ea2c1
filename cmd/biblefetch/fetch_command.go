package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"biblefetch/internal/catalog"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var maxPages int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the catalog cache from the content API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			total := 0
			page := 1
			for {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				result, err := client.ListBibles(cmd.Context(), page, cfg.API.PageLimit)
				if err != nil {
					return fmt.Errorf("list catalog page %d: %w", page, err)
				}
				if err := catalog.WritePage(cfg.Paths.CacheDir, page, result.Records); err != nil {
					return err
				}
				total += len(result.Records)

				if page >= result.Pagination.LastPage {
					break
				}
				if maxPages > 0 && page >= maxPages {
					break
				}
				page++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d catalog records across %d pages in %s\n",
				total, page, cfg.Paths.CacheDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Stop after this many pages (0 = all)")
	return cmd
}
