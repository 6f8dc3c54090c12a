package afl

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TeamMatch is one team's record within a single match
type TeamMatch struct {
	Name string `json:"name"`
	// Scores holds the score at the end of each quarter, plus one more entry
	// when the match went to extra time. Empty for a bye.
	Scores []Score `json:"scores"`
}

// FinalScore returns the score at the end of the match. The second result is
// false when there is no score, which is the case for a bye.
func (t TeamMatch) FinalScore() (Score, bool) {
	if len(t.Scores) == 0 {
		return Score{}, false
	}
	return t.Scores[len(t.Scores)-1], true
}

func (t TeamMatch) String() string {
	final, ok := t.FinalScore()
	if !ok {
		return t.Name + " Bye"
	}
	return fmt.Sprintf("%s %s", t.Name, final)
}

// Match is a single fixture, either played between two teams or a bye for one
type Match struct {
	Teams     []TeamMatch
	Date      time.Time
	Venue     string
	Attendees int
	Winner    string
	Bye       bool
}

// NewPlayedMatch creates a match between two teams
func NewPlayedMatch(home, away TeamMatch, date time.Time, venue string, attendees int, winner string) Match {
	return Match{
		Teams:     []TeamMatch{home, away},
		Date:      date,
		Venue:     venue,
		Attendees: attendees,
		Winner:    winner,
	}
}

// NewByeMatch creates a bye entry for a single team. The team is recorded as the
// winner so byes and played matches can be handled uniformly.
func NewByeMatch(team string) Match {
	return Match{
		Teams:  []TeamMatch{{Name: team, Scores: []Score{}}},
		Winner: team,
		Bye:    true,
	}
}

// Drawn reports whether a played match finished level
func (m Match) Drawn() bool {
	if m.Bye || len(m.Teams) != 2 || m.Winner != "" {
		return false
	}
	a, okA := m.Teams[0].FinalScore()
	b, okB := m.Teams[1].FinalScore()
	return okA && okB && a.Total() == b.Total()
}

// Involves reports whether the named team took part, case-insensitively
func (m Match) Involves(team string) bool {
	for _, t := range m.Teams {
		if strings.EqualFold(t.Name, team) {
			return true
		}
	}
	return false
}

// Opponent returns the other team in a played match
func (m Match) Opponent(team string) (TeamMatch, bool) {
	if m.Bye || len(m.Teams) != 2 {
		return TeamMatch{}, false
	}
	switch {
	case strings.EqualFold(m.Teams[0].Name, team):
		return m.Teams[1], true
	case strings.EqualFold(m.Teams[1].Name, team):
		return m.Teams[0], true
	}
	return TeamMatch{}, false
}

func (m Match) String() string {
	if m.Bye {
		return fmt.Sprintf("%s vs Bye", m.Teams[0].Name)
	}
	return fmt.Sprintf("%s vs %s", m.Teams[0].Name, m.Teams[1].Name)
}

// matchJSON is the wire form of a Match. Fields that only exist for played
// matches are pointers so byes encode them as null.
type matchJSON struct {
	Teams     []TeamMatch `json:"teams"`
	Date      *int64      `json:"date"`
	Venue     *string     `json:"venue"`
	Attendees *int        `json:"attendees"`
	Winner    string      `json:"winner"`
	Bye       bool        `json:"bye"`
}

// MarshalJSON encodes the match with its start time as UTC epoch seconds
func (m Match) MarshalJSON() ([]byte, error) {
	out := matchJSON{
		Teams:  m.Teams,
		Winner: m.Winner,
		Bye:    m.Bye,
	}
	if !m.Bye {
		epoch := m.Date.UTC().Unix()
		venue := m.Venue
		attendees := m.Attendees
		out.Date = &epoch
		out.Venue = &venue
		out.Attendees = &attendees
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (m *Match) UnmarshalJSON(data []byte) error {
	var in matchJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*m = Match{
		Teams:  in.Teams,
		Winner: in.Winner,
		Bye:    in.Bye,
	}
	if in.Date != nil {
		m.Date = time.Unix(*in.Date, 0).UTC()
	}
	if in.Venue != nil {
		m.Venue = *in.Venue
	}
	if in.Attendees != nil {
		m.Attendees = *in.Attendees
	}
	return nil
}
