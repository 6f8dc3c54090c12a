package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/logger"
)

const (
	BaseURL   = "https://afltables.com/afl/"
	UserAgent = "afl-tables/1.0 (github.com/pfrederiksen/afl-tables)"
	Timeout   = 30 * time.Second

	// FirstSeason is the earliest season AFL Tables holds
	FirstSeason = 1897
)

// ErrInvalidYear is returned for years before FirstSeason
var ErrInvalidYear = errors.New("invalid season year")

// Scraper fetches and parses AFL Tables season pages. It is safe for concurrent use.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
	strict    bool
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithHTTPClient sets the HTTP client used for fetching
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithBaseURL sets the archive root that season paths are resolved against
func WithBaseURL(u string) Option {
	return func(s *Scraper) { s.baseURL = u }
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithStrict controls unreadable match fields in regular rounds. Strict scrapers
// (the default) fail the season; WithStrict(false) logs and skips the match instead.
func WithStrict(strict bool) Option {
	return func(s *Scraper) { s.strict = strict }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

// WithMetrics sets the metrics tracker
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:   BaseURL,
		userAgent: UserAgent,
		strict:    true,
		log:       logger.Default(),
		metrics:   logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeasonURL returns the page URL for the given season, e.g.
// https://afltables.com/afl/seas/2019.html
func (s *Scraper) SeasonURL(year int) (string, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	// "https://afltables.com/afl" names the archive directory, not a page in its parent
	if last := path.Base(base.Path); !strings.HasSuffix(base.Path, "/") && !strings.Contains(last, ".") {
		base.Path += "/"
	}
	ref := &url.URL{Path: fmt.Sprintf("seas/%d.html", year)}
	return base.ResolveReference(ref).String(), nil
}

// FetchSeason fetches and parses every round of the given season. The result is all
// or nothing: any fetch error or fatal parse error returns no rounds.
func (s *Scraper) FetchSeason(ctx context.Context, year int) ([]afl.Round, error) {
	if year < FirstSeason {
		return nil, fmt.Errorf("%w: %d (first season is %d)", ErrInvalidYear, year, FirstSeason)
	}

	pageURL, err := s.SeasonURL(year)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Fetching season", logger.Fields{"year": year, "url": pageURL})

	start := time.Now()
	body, err := s.fetch(ctx, pageURL)
	s.metrics.RecordTiming("season.fetch", time.Since(start))
	if err != nil {
		s.metrics.IncrCounter("seasons.failed")
		return nil, err
	}

	rounds, err := s.ParseSeason(bytes.NewReader(body))
	if err != nil {
		s.metrics.IncrCounter("seasons.failed")
		return nil, fmt.Errorf("parsing season page: %w", err)
	}

	s.metrics.IncrCounter("seasons.fetched")
	s.log.Info("Fetched season", logger.Fields{
		"year":     year,
		"rounds":   len(rounds),
		"duration": time.Since(start).String(),
	})

	return rounds, nil
}

// ParseSeason extracts the rounds from a season page
func (s *Scraper) ParseSeason(r io.Reader) ([]afl.Round, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Ladders are "sortable" tables, and the finals section opens with a
	// heading table whose only text is "Finals".
	tables := doc.Find("center > table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		return !t.HasClass("sortable") && strings.TrimSpace(t.Text()) != "Finals"
	})

	rounds := make([]afl.Round, 0, (tables.Length()+1)/2)

	// Tables come in (title, body) pairs. An unpaired trailing title
	// produces a round with no matches.
	for i := 0; i < tables.Length(); i += 2 {
		title := tables.Eq(i).Find("td").First()

		var body *goquery.Selection
		if i+1 < tables.Length() {
			body = tables.Eq(i + 1)
		}

		round, err := s.parseRound(title, body)
		if err != nil {
			return nil, fmt.Errorf("round %q: %w", cellText(title), err)
		}
		rounds = append(rounds, round)
	}

	s.metrics.AddCounter("rounds.parsed", int64(len(rounds)))
	return rounds, nil
}
