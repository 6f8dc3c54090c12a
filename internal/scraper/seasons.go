package scraper

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/logger"
)

// FetchSeasons scrapes several seasons with at most concurrency requests in flight.
// Seasons that succeed are returned in the order of years. Failed seasons do not stop
// the others; their errors are combined into the returned error.
func (s *Scraper) FetchSeasons(ctx context.Context, years []int, concurrency int) ([]afl.Season, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*afl.Season, len(years))
	errs := make([]error, len(years))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			rounds, err := s.FetchSeason(ctx, year)
			if err != nil {
				s.log.Error("Season failed", logger.Fields{"year": year}, err)
				errs[i] = fmt.Errorf("season %d: %w", year, err)
				return nil
			}
			results[i] = &afl.Season{Year: year, Rounds: rounds}
			return nil
		})
	}
	_ = g.Wait()

	seasons := make([]afl.Season, 0, len(years))
	for _, season := range results {
		if season != nil {
			seasons = append(seasons, *season)
		}
	}

	return seasons, multierr.Combine(errs...)
}

// Years returns the inclusive range of seasons from first to last
func Years(first, last int) ([]int, error) {
	if first > last {
		return nil, fmt.Errorf("%w: range %d-%d is reversed", ErrInvalidYear, first, last)
	}
	if first < FirstSeason {
		return nil, fmt.Errorf("%w: %d (first season is %d)", ErrInvalidYear, first, FirstSeason)
	}

	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years, nil
}
