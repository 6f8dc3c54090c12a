// Package calendar renders fixtures as iCalendar feeds.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

// MatchDuration is the length given to every match event
const MatchDuration = 3 * time.Hour

var printer = message.NewPrinter(language.English)

// GenerateICS generates an iCalendar feed with one event per played match of a
// season. Byes have no start time and are left out.
func GenerateICS(season afl.Season) string {
	return generate(season, time.Now().UTC())
}

func generate(season afl.Season, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//AFL Tables//afl-tables//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(fmt.Sprintf("AFL %d Season", season.Year))))

	for _, round := range season.Rounds {
		for _, m := range round.Matches {
			if m.Bye {
				continue
			}
			writeEvent(&ics, season.Year, round.Title, m, now)
		}
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, year int, roundTitle string, m afl.Match, now time.Time) {
	home, away := m.Teams[0], m.Teams[1]

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@afltables.com\r\n", UID(year, roundTitle, m)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(m.Date)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(m.Date.Add(MatchDuration))))

	summary := fmt.Sprintf("%s: %s vs %s", roundTitle, home.Name, away.Name)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(describe(m))))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(m.Venue)))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// describe lists both final scores, the result and the crowd
func describe(m afl.Match) string {
	lines := make([]string, 0, 4)
	for _, t := range m.Teams {
		final, _ := t.FinalScore()
		lines = append(lines, fmt.Sprintf("%s %s (%d)", t.Name, final, final.Total()))
	}
	if m.Drawn() {
		lines = append(lines, "Result: Draw")
	} else {
		lines = append(lines, fmt.Sprintf("Winner: %s", m.Winner))
	}
	if m.Attendees > 0 {
		lines = append(lines, printer.Sprintf("Crowd: %d", m.Attendees))
	}
	return strings.Join(lines, "\n")
}

// UID builds a stable identifier from the season, round and teams,
// e.g. "2019-round-1-carlton-richmond".
func UID(year int, roundTitle string, m afl.Match) string {
	parts := []string{fmt.Sprint(year), slug(roundTitle)}
	for _, t := range m.Teams {
		parts = append(parts, slug(t.Name))
	}
	return strings.Join(parts, "-")
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// RFC 5545 TEXT escaping
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
