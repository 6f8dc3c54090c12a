package afl

import "strings"

// RoundMatch is a match together with the title of the round it belongs to
type RoundMatch struct {
	Round string
	Match Match
}

// Key identifies a match within a season by round and teams, e.g.
// "Round 1|Carlton|Richmond".
func (rm RoundMatch) Key() string {
	parts := []string{rm.Round}
	for _, t := range rm.Match.Teams {
		parts = append(parts, t.Name)
	}
	return strings.Join(parts, "|")
}

// NewResults returns the played matches in current that previous did not have,
// in page order. A nil previous season treats every played match as new.
func NewResults(previous *Season, current Season) []RoundMatch {
	seen := make(map[string]bool)
	if previous != nil {
		for _, r := range previous.Rounds {
			for _, m := range r.Matches {
				seen[RoundMatch{Round: r.Title, Match: m}.Key()] = true
			}
		}
	}

	var added []RoundMatch
	for _, r := range current.Rounds {
		for _, m := range r.Matches {
			if m.Bye {
				continue
			}
			rm := RoundMatch{Round: r.Title, Match: m}
			if !seen[rm.Key()] {
				added = append(added, rm)
			}
		}
	}
	return added
}
