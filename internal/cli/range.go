package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/config"
	"github.com/pfrederiksen/afl-tables/internal/logger"
	"github.com/pfrederiksen/afl-tables/internal/scraper"
	"github.com/pfrederiksen/afl-tables/internal/storage"
)

// DefaultDataDir is where range writes seasons unless --out is given
const DefaultDataDir = "~/.local/share/afl-tables"

func newRangeCmd(opts *options) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "range <from> <to>",
		Short: "Export every season in an inclusive range to JSON files",
		Long: `Scrape every season from <from> to <to> and write each one to
<out>/<year>.json. Seasons that fail are reported together after the
others have been written, and the command exits non-zero.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(cmd, opts, outDir, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&outDir, "out", DefaultDataDir, "Directory to write <year>.json files to")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency, "Seasons fetched at once")

	return cmd
}

func runRange(cmd *cobra.Command, opts *options, outDir, fromArg, toArg string) error {
	from, err := parseYear(fromArg)
	if err != nil {
		return err
	}
	to, err := parseYear(toArg)
	if err != nil {
		return err
	}
	years, err := scraper.Years(from, to)
	if err != nil {
		return err
	}

	e, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer e.log.Close()
	if opts.verbose {
		defer printMetrics(cmd.ErrOrStderr(), e.metrics)
	}

	store, err := storage.New(outDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.log.Info("Exporting seasons", logger.Fields{
		"from":        from,
		"to":          to,
		"concurrency": e.cfg.Concurrency,
		"dir":         store.Dir(),
	})

	seasons, errs := e.scraper.FetchSeasons(ctx, years, e.cfg.Concurrency)

	out := cmd.OutOrStdout()
	saved := 0
	for _, season := range seasons {
		var previous *afl.Season
		if prev, err := store.LoadSeason(season.Year); err == nil {
			previous = &prev
		} else if !errors.Is(err, storage.ErrNotFound) {
			e.log.Warn("Ignoring unreadable previous export", logger.Fields{"year": season.Year, "error": err.Error()})
		}

		if err := store.SaveSeason(season); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		saved++
		fmt.Fprintf(out, "%d: %d rounds, %d matches%s -> %s\n",
			season.Year, len(season.Rounds), season.MatchCount(), newResultsNote(previous, season), store.Path(season.Year))
	}

	fmt.Fprintf(out, "Saved %d of %d seasons to %s\n", saved, len(years), store.Dir())

	if errs != nil {
		return fmt.Errorf("%d of %d seasons failed: %w", len(years)-saved, len(years), errs)
	}
	return nil
}

// newResultsNote describes what changed since the previous export of a season
func newResultsNote(previous *afl.Season, season afl.Season) string {
	if previous == nil {
		return ""
	}
	n := len(afl.NewResults(previous, season))
	if n == 0 {
		return ", unchanged"
	}
	return fmt.Sprintf(", %d new results", n)
}
