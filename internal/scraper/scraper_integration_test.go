package scraper

import (
	"context"
	"os"
	"testing"
	"time"
)

// These tests hit afltables.com. Run them with AFL_TABLES_LIVE=1.
func skipUnlessLive(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv("AFL_TABLES_LIVE") != "1" {
		t.Skip("set AFL_TABLES_LIVE=1 to run live scraping tests")
	}
}

func TestLive_AllSeasons(t *testing.T) {
	skipUnlessLive(t)

	s := New(WithStrict(false))
	last := time.Now().Year() - 1

	for year := 1908; year <= last; year++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		rounds, err := s.FetchSeason(ctx, year)
		cancel()

		if err != nil {
			t.Errorf("season %d: %v", year, err)
			continue
		}
		if len(rounds) == 0 {
			t.Errorf("season %d: no rounds", year)
		}
	}
}

func TestLive_2019(t *testing.T) {
	skipUnlessLive(t)

	rounds, err := New().FetchSeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FetchSeason(2019) error: %v", err)
	}

	round1 := rounds[0]
	if round1.Title != "Round 1" {
		t.Errorf("Title = %q, want Round 1", round1.Title)
	}

	match1 := round1.Matches[0]
	if want := time.Date(2019, 3, 21, 19, 25, 0, 0, time.UTC); !match1.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", match1.Date, want)
	}
	if match1.Venue != "M.C.G." || match1.Winner != "Richmond" {
		t.Errorf("venue %q winner %q", match1.Venue, match1.Winner)
	}
	checkTeam(t, match1.Teams[0], "Carlton", 64)
	checkTeam(t, match1.Teams[1], "Richmond", 97)
}

func TestLive_2020(t *testing.T) {
	skipUnlessLive(t)

	rounds, err := New().FetchSeason(context.Background(), 2020)
	if err != nil {
		t.Fatalf("FetchSeason(2020) error: %v", err)
	}

	match1 := rounds[0].Matches[0]
	if want := time.Date(2020, 3, 19, 19, 40, 0, 0, time.UTC); !match1.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", match1.Date, want)
	}
	if match1.Venue != "M.C.G." || match1.Winner != "Richmond" {
		t.Errorf("venue %q winner %q", match1.Venue, match1.Winner)
	}
	checkTeam(t, match1.Teams[0], "Richmond", 105)
	checkTeam(t, match1.Teams[1], "Carlton", 81)
}
