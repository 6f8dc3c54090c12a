package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/config"
	"github.com/pfrederiksen/afl-tables/internal/filter"
	"github.com/pfrederiksen/afl-tables/internal/logger"
	"github.com/pfrederiksen/afl-tables/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the flags shared by every command
type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	lenient    bool
	logLevel   string
	logFile    string
	verbose    bool
}

// seasonOptions holds the root command's output and filter flags
type seasonOptions struct {
	format     string
	pretty     bool
	sortOrder  string
	teams      []string
	venues     []string
	from       string
	to         string
	dates      string
	weekends   bool
	finalsOnly bool
	noByes     bool
}

// env is everything a command needs once config and flags are resolved
type env struct {
	cfg     config.Config
	log     *logger.Logger
	metrics *logger.Metrics
	scraper *scraper.Scraper
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}
	sopts := &seasonOptions{}

	cmd := &cobra.Command{
		Use:   "afl-tables <year>",
		Short: "Scrape AFL season results from afltables.com",
		Long: `A CLI tool to scrape a season of AFL results from afltables.com.
Prints every round with its matches, quarter-by-quarter scores, venues,
crowds and winners.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeason(cmd, opts, sopts, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	pf.StringVar(&opts.baseURL, "base-url", "", "Archive root URL (default "+config.DefaultBaseURL+")")
	pf.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout per request (default 30s)")
	pf.BoolVar(&opts.lenient, "lenient", false, "Skip regular-round matches with unreadable fields instead of failing")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	pf.BoolVar(&opts.verbose, "verbose", false, "Print progress and metrics to stderr")

	f := cmd.Flags()
	f.StringVar(&sopts.format, "format", string(FormatJSON), "Output format: json, text or ics")
	f.BoolVar(&sopts.pretty, "pretty", false, "Indent JSON output")
	f.StringVar(&sopts.sortOrder, "sort", "", "Sort matches within each round: date, crowd or margin")
	f.StringArrayVar(&sopts.teams, "team", nil, "Only matches involving this team (repeatable)")
	f.StringArrayVar(&sopts.venues, "venue", nil, "Only matches at this venue (repeatable)")
	f.StringVar(&sopts.from, "from", "", "Only matches on or after this date (YYYY-MM-DD)")
	f.StringVar(&sopts.to, "to", "", "Only matches on or before this date (YYYY-MM-DD)")
	f.StringVar(&sopts.dates, "dates", "", "Only matches in this part of the season, e.g. 'Mar 1-15' or 'September'")
	f.BoolVar(&sopts.weekends, "weekends", false, "Only Saturday and Sunday matches")
	f.BoolVar(&sopts.finalsOnly, "finals-only", false, "Only finals")
	f.BoolVar(&sopts.noByes, "no-byes", false, "Leave out byes")

	cmd.AddCommand(newRangeCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// runSeason is the main command logic
func runSeason(cmd *cobra.Command, opts *options, sopts *seasonOptions, yearArg string) error {
	year, err := parseYear(yearArg)
	if err != nil {
		return err
	}

	format := OutputFormat(strings.ToLower(sopts.format))
	if !format.Valid() {
		return fmt.Errorf("invalid format: %s (must be 'json', 'text' or 'ics')", sopts.format)
	}
	order := SortOrder(strings.ToLower(sopts.sortOrder))
	if !order.Valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'date', 'crowd' or 'margin')", sopts.sortOrder)
	}

	f, err := buildFilter(sopts, year)
	if err != nil {
		return err
	}

	e, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer e.log.Close()

	stderr := cmd.ErrOrStderr()
	if opts.verbose {
		defer printMetrics(stderr, e.metrics)
		if !f.IsEmpty() {
			fmt.Fprintf(stderr, "Filter: %s\n", f)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.verbose {
		url, _ := e.scraper.SeasonURL(year)
		fmt.Fprintf(stderr, "Fetching season %d from %s\n", year, url)
	}

	rounds, err := e.scraper.FetchSeason(ctx, year)
	if err != nil {
		return fmt.Errorf("fetching season %d: %w", year, err)
	}

	season := afl.Season{Year: year, Rounds: sortRounds(f.Apply(rounds), order)}

	if opts.verbose {
		fmt.Fprintf(stderr, "Fetched %d rounds, %d matches\n", len(season.Rounds), season.MatchCount())
	}

	if err := WriteOutput(cmd.OutOrStdout(), season, format, sopts.pretty); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// setup loads the config, applies flag overrides and builds the logger and scraper
func setup(cmd *cobra.Command, opts *options) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration{Duration: opts.timeout}
	}
	if flags.Changed("lenient") {
		cfg.Strict = !opts.lenient
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)

	metrics := logger.NewMetrics()
	sc := scraper.New(
		scraper.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Duration}),
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithStrict(cfg.Strict),
		scraper.WithLogger(log),
		scraper.WithMetrics(metrics),
	)

	return &env{cfg: cfg, log: log, metrics: metrics, scraper: sc}, nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", scraper.ErrInvalidYear, s)
	}
	if year < scraper.FirstSeason {
		return 0, fmt.Errorf("%w: %d (first season is %d)", scraper.ErrInvalidYear, year, scraper.FirstSeason)
	}
	return year, nil
}

// buildFilter turns the filter flags into a Filter for the given season
func buildFilter(sopts *seasonOptions, year int) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Teams = append(f.Teams, sopts.teams...)
	f.Venues = append(f.Venues, sopts.venues...)
	f.WeekendsOnly = sopts.weekends
	f.FinalsOnly = sopts.finalsOnly
	f.ExcludeByes = sopts.noByes

	if sopts.dates != "" {
		if sopts.from != "" || sopts.to != "" {
			return nil, fmt.Errorf("--dates cannot be combined with --from or --to")
		}
		from, to, err := filter.ParseDateRange(sopts.dates, year)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
		return f, nil
	}

	if sopts.from != "" {
		from, err := filter.ParseDate(sopts.from)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
		f.DateFrom = &from
	}
	if sopts.to != "" {
		to, err := filter.ParseDate(sopts.to)
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		to = filter.EndOfDay(to)
		f.DateTo = &to
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return nil, fmt.Errorf("--from must not be after --to")
	}

	return f, nil
}

// printMetrics writes the metrics snapshot as indented JSON
func printMetrics(w io.Writer, m *logger.Metrics) {
	fmt.Fprintln(w, "Metrics:")
	writeJSON(w, m.GetSnapshot(), true)
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
