package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/michaelpawlus/990-beacon/internal/cli"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// searcher is the slice of the API client the search commands need.
type searcher interface {
	Search(ctx context.Context, filters model.SearchFilters) (model.PaginatedResults[model.OrganizationSearchResult], error)
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search organizations by name, EIN or keyword",
		Long: `Search tax-exempt organizations.

The query is matched against organization names and EINs. Filters narrow the
results by state, NTEE classification, filing year, revenue and assets.

Examples:
  beacon search red cross
  beacon search --state WA --ntee B --min-revenue 1000000
  beacon search food bank --all --max-pages 5 --json`,
		RunE: runSearch,
	}

	cmd.Flags().String("state", "", "two-letter state code")
	cmd.Flags().String("ntee", "", "NTEE code or prefix")
	cmd.Flags().Int64("year", 0, "filing tax year")
	cmd.Flags().Int64("min-revenue", 0, "minimum total revenue")
	cmd.Flags().Int64("max-revenue", 0, "maximum total revenue")
	cmd.Flags().Int64("min-assets", 0, "minimum total assets")
	cmd.Flags().Int64("max-assets", 0, "maximum total assets")
	cmd.Flags().Int("page", 1, "results page")
	cmd.Flags().Int("page-size", 0, "results per page (default from config)")
	cmd.Flags().Bool("all", false, "fetch every page")
	cmd.Flags().Int("max-pages", 10, "page limit when fetching every page")
	cmd.Flags().Bool("json", false, "print JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters, err := filtersFromFlags(cmd.Flags(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if filters.PageSize == 0 {
		filters.PageSize = appConfig.Search.PageSize
	}

	client, err := newClient(cmd.Context(), appConfig)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if !all {
		results, err := client.Search(cmd.Context(), filters)
		if err != nil {
			return common.Explain(err)
		}
		if asJSON {
			return cli.WriteJSON(out, results)
		}
		_, err = fmt.Fprintln(out, cli.RenderSearchResults(results))
		return err
	}

	maxPages, _ := cmd.Flags().GetInt("max-pages")
	if maxPages < 1 {
		return fmt.Errorf("%w: --max-pages must be at least 1", common.ErrInvalidArgument)
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Search")
	ctx := handler.HandleInterrupts(cmd.Context(), true)

	items, total, err := walkPages(ctx, client, filters, maxPages, cmd.ErrOrStderr())
	if err != nil && !(handler.WasInterrupted() && errors.Is(err, context.Canceled)) {
		return common.Explain(err)
	}

	if asJSON {
		return cli.WriteJSON(out, items)
	}
	_, err = fmt.Fprintln(out, cli.RenderSearchResults(model.PaginatedResults[model.OrganizationSearchResult]{
		Items:      items,
		Total:      total,
		Page:       1,
		PageSize:   len(items),
		TotalPages: 1,
	}))
	return err
}

// filtersFromFlags builds search filters from the command's flags. Numeric
// filters are only set when their flag was given.
func filtersFromFlags(flags *pflag.FlagSet, query string) (model.SearchFilters, error) {
	f := model.SearchFilters{Q: strings.TrimSpace(query)}

	state, _ := flags.GetString("state")
	if state = strings.ToUpper(strings.TrimSpace(state)); state != "" {
		if !model.IsUSState(state) {
			return f, fmt.Errorf("%w: unknown state %q", common.ErrInvalidArgument, state)
		}
		f.State = state
	}

	ntee, _ := flags.GetString("ntee")
	f.NTEECode = strings.ToUpper(strings.TrimSpace(ntee))

	for name, dst := range map[string]**int64{
		"year":        &f.FilingYear,
		"min-revenue": &f.MinRevenue,
		"max-revenue": &f.MaxRevenue,
		"min-assets":  &f.MinAssets,
		"max-assets":  &f.MaxAssets,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt64(name)
		if err != nil {
			return f, fmt.Errorf("%w: --%s: %w", common.ErrInvalidArgument, name, err)
		}
		*dst = &v
	}

	if outOfOrder(f.MinRevenue, f.MaxRevenue) {
		return f, fmt.Errorf("%w: --min-revenue is greater than --max-revenue", common.ErrInvalidArgument)
	}
	if outOfOrder(f.MinAssets, f.MaxAssets) {
		return f, fmt.Errorf("%w: --min-assets is greater than --max-assets", common.ErrInvalidArgument)
	}

	page, _ := flags.GetInt("page")
	if page < 1 {
		return f, fmt.Errorf("%w: --page must be at least 1", common.ErrInvalidArgument)
	}
	f.Page = page

	size, _ := flags.GetInt("page-size")
	if size < 0 || size > 100 {
		return f, fmt.Errorf("%w: --page-size must be between 1 and 100", common.ErrInvalidArgument)
	}
	f.PageSize = size

	return f, nil
}

func outOfOrder(lo, hi *int64) bool {
	return lo != nil && hi != nil && *lo > *hi
}

// walkPages fetches pages starting at filters.Page until the last page or
// maxPages pages have been read. On error it returns what was fetched so far
// along with the error.
func walkPages(ctx context.Context, s searcher, filters model.SearchFilters, maxPages int, progress io.Writer) ([]model.OrganizationSearchResult, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}

	var (
		items []model.OrganizationSearchResult
		total int
		bar   *progressbar.ProgressBar
	)
	for fetched := 0; fetched < maxPages; fetched++ {
		if err := ctx.Err(); err != nil {
			return items, total, err
		}

		page, err := s.Search(ctx, filters)
		if err != nil {
			return items, total, fmt.Errorf("failed to fetch page %d: %w", filters.Page, err)
		}
		items = append(items, page.Items...)
		total = page.Total

		if bar == nil {
			bar = newPageBar(progress, min(page.TotalPages-filters.Page+1, maxPages))
		}
		_ = bar.Add(1)

		if !page.HasNext() || len(page.Items) == 0 {
			break
		}
		filters = filters.WithPage(page.Page + 1)
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return items, total, nil
}

func newPageBar(w io.Writer, pages int) *progressbar.ProgressBar {
	return progressbar.NewOptions(max(pages, 1),
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Fetching pages...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
