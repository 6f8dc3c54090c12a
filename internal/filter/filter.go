// Package filter narrows a scraped season down to the matches a caller cares about.
//
// Criteria combine with AND; list criteria (teams, venues) match when any entry
// matches, case-insensitively, as a substring:
//   - Teams: either side of the match
//   - Venues: the ground name
//   - DateFrom/DateTo: start time within the range (inclusive)
//   - WeekendsOnly: Saturday or Sunday starts
//   - FinalsOnly: rounds whose title names a final
//   - ExcludeByes: drop bye entries
//
// Byes have no date or venue, so date and venue criteria drop them.
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Teams = []string{"Richmond"}
//	f.FinalsOnly = true
//	rounds = f.Apply(rounds)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

// Filter represents match filtering criteria
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	Teams  []string `json:"teams,omitempty"`
	Venues []string `json:"venues,omitempty"`

	WeekendsOnly bool `json:"weekends_only,omitempty"`
	FinalsOnly   bool `json:"finals_only,omitempty"`
	ExcludeByes  bool `json:"exclude_byes,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Teams:  []string{},
		Venues: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Teams) == 0 &&
		len(f.Venues) == 0 &&
		!f.WeekendsOnly &&
		!f.FinalsOnly &&
		!f.ExcludeByes
}

// Matches checks if a match from the given round passes every active criterion.
func (f *Filter) Matches(round afl.Round, m afl.Match) bool {
	if f.IsEmpty() {
		return true
	}

	if f.FinalsOnly && !round.IsFinal() {
		return false
	}

	if m.Bye && (f.ExcludeByes || f.hasFixtureCriteria()) {
		return false
	}

	if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.Date.After(*f.DateTo) {
		return false
	}

	if f.WeekendsOnly {
		weekday := m.Date.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if len(f.Teams) > 0 {
		matched := false
		for _, t := range m.Teams {
			if containsAny(t.Name, f.Teams) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Venues) > 0 && !containsAny(m.Venue, f.Venues) {
		return false
	}

	return true
}

// hasFixtureCriteria reports whether any criterion needs a date or venue
func (f *Filter) hasFixtureCriteria() bool {
	return f.DateFrom != nil || f.DateTo != nil || f.WeekendsOnly || len(f.Venues) > 0
}

// Apply returns the rounds with non-matching matches removed. Rounds left with no
// matches are dropped. Round order and match order are preserved, and the input is
// not modified. An empty filter returns rounds unchanged.
func (f *Filter) Apply(rounds []afl.Round) []afl.Round {
	if f.IsEmpty() {
		return rounds
	}

	filtered := make([]afl.Round, 0, len(rounds))
	for _, r := range rounds {
		var matches []afl.Match
		for _, m := range r.Matches {
			if f.Matches(r, m) {
				matches = append(matches, m)
			}
		}
		if len(matches) > 0 {
			filtered = append(filtered, afl.Round{Title: r.Title, Matches: matches})
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: Mar 1, 2019 | Teams: Richmond | Finals only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}
	if len(f.Venues) > 0 {
		parts = append(parts, fmt.Sprintf("Venues: %s", strings.Join(f.Venues, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	if f.FinalsOnly {
		parts = append(parts, "Finals only")
	}
	if f.ExcludeByes {
		parts = append(parts, "No byes")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		WeekendsOnly: f.WeekendsOnly,
		FinalsOnly:   f.FinalsOnly,
		ExcludeByes:  f.ExcludeByes,
		Teams:        append([]string{}, f.Teams...),
		Venues:       append([]string{}, f.Venues...),
	}

	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}
	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}

	return clone
}

func containsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(strings.TrimSpace(n))) {
			return true
		}
	}
	return false
}
