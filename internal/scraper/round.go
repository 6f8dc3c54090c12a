package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/logger"
)

// matchBlockSelector finds the per-match tables inside a regular round's body
const matchBlockSelector = `td[width="85%"] table`

// parseRound builds a round from its title cell and body table. body is nil when
// the page ends with an unpaired title.
func (s *Scraper) parseRound(title, body *goquery.Selection) (afl.Round, error) {
	round := afl.Round{Title: cellText(title), Matches: []afl.Match{}}

	if body == nil || body.Length() == 0 {
		s.log.Warn("Round has no body table", logger.Fields{"round": round.Title})
		return round, nil
	}

	// A finals body is the match table itself
	if strings.Contains(round.Title, "Final") {
		match, err := parseMatch(body)
		if err != nil {
			return afl.Round{}, err
		}
		s.countMatch(match)
		round.Matches = append(round.Matches, match)
		return round, nil
	}

	var parseErr error
	body.Find(matchBlockSelector).EachWithBreak(func(i int, table *goquery.Selection) bool {
		match, err := parseMatch(table)
		switch {
		case err == nil:
			s.countMatch(match)
			round.Matches = append(round.Matches, match)
		case errors.Is(err, afl.ErrMalformedMatch):
			// ladders, spacers and other layout tables
		case s.strict:
			parseErr = fmt.Errorf("match %d: %w", i+1, err)
			return false
		default:
			s.metrics.IncrCounter("matches.skipped")
			s.log.Warn("Skipping unreadable match", logger.Fields{
				"round": round.Title,
				"index": i,
				"text":  strings.Join(strings.Fields(table.Text()), " "),
				"error": err.Error(),
			})
		}
		return true
	})
	if parseErr != nil {
		return afl.Round{}, parseErr
	}

	return round, nil
}

func (s *Scraper) countMatch(m afl.Match) {
	if m.Bye {
		s.metrics.IncrCounter("matches.byes")
		return
	}
	s.metrics.IncrCounter("matches.parsed")
}
