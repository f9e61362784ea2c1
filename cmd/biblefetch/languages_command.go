package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"biblefetch/internal/bookset"
	"biblefetch/internal/classify"
	"biblefetch/internal/language"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var bookSetFlag string
	var countsFlag bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List languages in the sorted tree by book set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if countsFlag {
				ledger, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = ledger.Close() }()

				counts, err := ledger.CategoryCounts(cmd.Context())
				if err != nil {
					return err
				}
				categories := make([]classify.Category, 0, len(counts))
				for category := range counts {
					categories = append(categories, category)
				}
				sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
				rows := make([][]string, 0, len(categories))
				for _, category := range categories {
					rows = append(rows, []string{string(category), strconv.Itoa(counts[category])})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Category", "Groups"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			}

			set, err := bookset.Parse(bookSetFlag)
			if err != nil {
				return err
			}
			isos, err := bookset.Languages(cfg.Paths.SortedDir, set)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(isos))
			for _, iso := range isos {
				rows = append(rows, []string{iso, language.DisplayName(iso)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ISO", "Language"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d languages match %s\n", len(isos), set)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookSetFlag, "book-set", string(bookset.All), "Book-set filter")
	cmd.Flags().BoolVar(&countsFlag, "counts", false, "Show classification counts from the run ledger instead")
	return cmd
}
