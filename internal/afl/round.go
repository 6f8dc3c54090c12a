package afl

import "strings"

// Round is a titled group of matches, e.g. "Round 1" or "Grand Final"
type Round struct {
	Title   string  `json:"title"`
	Matches []Match `json:"matches"`
}

// IsFinal reports whether this is a finals round
func (r Round) IsFinal() bool {
	return strings.Contains(r.Title, "Final")
}

func (r Round) String() string {
	return r.Title
}

// Season is the full scrape result for one year
type Season struct {
	Year   int     `json:"year"`
	Rounds []Round `json:"rounds"`
}

// MatchCount returns the number of matches across all rounds, byes included
func (s Season) MatchCount() int {
	n := 0
	for _, r := range s.Rounds {
		n += len(r.Matches)
	}
	return n
}
