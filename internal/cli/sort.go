package cli

import (
	"sort"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage   SortOrder = ""
	SortByDate   SortOrder = "date"
	SortByCrowd  SortOrder = "crowd"
	SortByMargin SortOrder = "margin"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByPage, SortByDate, SortByCrowd, SortByMargin:
		return true
	}
	return false
}

// sortRounds sorts the matches inside each round. Rounds keep their order and
// byes always go last. SortByPage leaves the page order untouched.
func sortRounds(rounds []afl.Round, order SortOrder) []afl.Round {
	if order == SortByPage {
		return rounds
	}

	sorted := make([]afl.Round, len(rounds))
	for i, r := range rounds {
		matches := append([]afl.Match(nil), r.Matches...)
		sort.SliceStable(matches, func(i, j int) bool {
			return lessMatch(matches[i], matches[j], order)
		})
		sorted[i] = afl.Round{Title: r.Title, Matches: matches}
	}
	return sorted
}

// lessMatch reports whether a should come before b
func lessMatch(a, b afl.Match, order SortOrder) bool {
	if a.Bye != b.Bye {
		return !a.Bye
	}
	if a.Bye {
		return false
	}

	switch order {
	case SortByDate:
		return a.Date.Before(b.Date)
	case SortByCrowd:
		// Largest crowd first
		return a.Attendees > b.Attendees
	case SortByMargin:
		// Biggest win first
		return margin(a) > margin(b)
	}
	return false
}

// margin returns the points difference between the two final scores
func margin(m afl.Match) int {
	if len(m.Teams) != 2 {
		return 0
	}
	home, _ := m.Teams[0].FinalScore()
	away, _ := m.Teams[1].FinalScore()
	d := home.Total() - away.Total()
	if d < 0 {
		return -d
	}
	return d
}
