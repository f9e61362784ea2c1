package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"biblefetch/internal/bookset"
	"biblefetch/internal/download"
	"biblefetch/internal/services"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var (
		booksFlag        string
		templateFlag     string
		bookSetFlag      string
		forceFlag        bool
		forcePartialFlag bool
		contentTypesFlag string
	)

	cmd := &cobra.Command{
		Use:   "download [iso]",
		Short: "Download chapter media for one language or a book-set batch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			opts := download.Options{
				Force:        forceFlag,
				ForcePartial: forcePartialFlag,
				Workers:      cfg.Download.Workers,
				ContentTypes: cfg.Download.ContentTypes,
			}
			if contentTypesFlag != "" {
				types, err := parseContentTypes(contentTypesFlag)
				if err != nil {
					return err
				}
				opts.ContentTypes = types
			}

			languages := args
			if bookSetFlag != "" {
				set, err := bookset.Parse(bookSetFlag)
				if err != nil {
					return err
				}
				languages, err = bookset.Languages(cfg.Paths.SortedDir, set)
				if err != nil {
					return err
				}
				if len(languages) == 0 {
					return services.Wrap(services.ErrNotFound, "cli", "download",
						fmt.Sprintf("no languages match book set %s", set), nil)
				}
				opts.RequiredCategory = set.RequiredCategory()
				opts.RequiredCanon = set.RequiredCanon()
				if set.ForcePartial() {
					opts.ForcePartial = true
				}
			}
			if len(languages) == 0 {
				return services.Wrap(services.ErrValidation, "cli", "download",
					"language ISO code required unless --book-set is given", nil)
			}

			plan, err := resolvePlan(cfg.Paths.TemplateDir, cfg.Paths.StorySetPath, templateFlag, booksFlag)
			if err != nil {
				return err
			}

			lock, err := ctx.acquireLock()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			d := download.New(client, cfg.Paths.SortedDir, cfg.Paths.DownloadsDir, opts, ctx.loggerValue())
			for i, iso := range languages {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if len(languages) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", i+1, len(languages), iso)
				}
				if err := d.DownloadLanguage(cmd.Context(), iso, plan); err != nil {
					return err
				}
			}

			if err := d.SaveErrorLog(cfg.Paths.DownloadLogDir); err != nil {
				return err
			}

			report := d.Stats()
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Outcome", "Count"},
				[][]string{
					{"Downloaded", strconv.Itoa(report.Downloaded)},
					{"Already exists", strconv.Itoa(report.AlreadyExists)},
					{"Failed", strconv.Itoa(report.Failed)},
					{"Total processed", strconv.Itoa(report.Total())},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&booksFlag, "books", "", "Books to download (GEN, GEN:1-3,MAT:1-5, or a story set name)")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Template id; books are read from its markdown references")
	cmd.Flags().StringVar(&bookSetFlag, "book-set", "", "Batch filter: ALL, TIMING_NT, TIMING_OT, SYNC_NT, SYNC_OT, PARTIAL")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Re-download files that already exist")
	cmd.Flags().BoolVar(&forcePartialFlag, "force-partial", false, "Include partial content")
	cmd.Flags().StringVar(&contentTypesFlag, "content-types", "", "Comma-separated subset of audio,text,timing")
	return cmd
}

// resolvePlan turns the --template or --books argument into a book plan. A
// template takes precedence over an explicit book list.
func resolvePlan(templateDir, storySetPath, templateID, booksSpec string) ([]download.BookPlan, error) {
	if templateID != "" {
		return download.LoadTemplateReferences(templateDir, templateID)
	}
	if booksSpec == "" {
		return nil, services.Wrap(services.ErrValidation, "cli", "download", "--books or --template required", nil)
	}
	storySets, err := download.LoadStorySets(storySetPath)
	if err != nil {
		return nil, err
	}
	return download.ExpandBooksSpec(booksSpec, storySets)
}

func parseContentTypes(value string) ([]string, error) {
	var types []string
	for _, raw := range strings.Split(value, ",") {
		ct := strings.ToLower(strings.TrimSpace(raw))
		if ct == "" {
			continue
		}
		switch ct {
		case "audio", "text", "timing":
			types = append(types, ct)
		default:
			return nil, services.Wrap(services.ErrValidation, "cli", "download",
				fmt.Sprintf("invalid content type %q (valid: audio, text, timing)", ct), nil)
		}
	}
	if len(types) == 0 {
		return nil, services.Wrap(services.ErrValidation, "cli", "download", "empty content type list", nil)
	}
	return types, nil
}
