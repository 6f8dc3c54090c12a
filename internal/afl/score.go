package afl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Score is a team's tally at one point in a match
type Score struct {
	Goals   int `json:"goals"`
	Behinds int `json:"behinds"`
}

// Total returns the points value: six per goal, one per behind
func (s Score) Total() int {
	return 6*s.Goals + s.Behinds
}

// String renders the score the way the site prints it, e.g. "9.10"
func (s Score) String() string {
	return fmt.Sprintf("%d.%d", s.Goals, s.Behinds)
}

// MarshalJSON adds the derived total alongside goals and behinds
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Goals   int `json:"goals"`
		Behinds int `json:"behinds"`
		Total   int `json:"total"`
	}{s.Goals, s.Behinds, s.Total()})
}

// ParseScore parses a "goals.behinds" token. Extra-time scores are printed in
// parentheses, e.g. "(12.8)", and parse the same way.
func ParseScore(token string) (Score, error) {
	raw := token
	token = strings.TrimPrefix(strings.TrimSpace(token), "(")
	token = strings.TrimSuffix(token, ")")

	goals, behinds, ok := strings.Cut(token, ".")
	if !ok || strings.Contains(behinds, ".") {
		return Score{}, NewFieldError("score", raw, errors.New("expected goals.behinds"))
	}

	g, err := parseCount(goals)
	if err != nil {
		return Score{}, NewFieldError("score", raw, err)
	}
	b, err := parseCount(behinds)
	if err != nil {
		return Score{}, NewFieldError("score", raw, err)
	}

	return Score{Goals: g, Behinds: b}, nil
}

// parseCount parses a non-negative decimal integer
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
