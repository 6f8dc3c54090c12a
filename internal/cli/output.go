package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/calendar"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
	FormatICS  OutputFormat = "ics"
)

// dateLayout matches the way afltables.com prints match start times
const dateLayout = "Mon 2-Jan-2006 3:04 PM"

var printer = message.NewPrinter(language.English)

// Valid reports whether f is a known format
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatJSON, FormatText, FormatICS:
		return true
	}
	return false
}

// WriteOutput writes the season in the specified format
func WriteOutput(w io.Writer, season afl.Season, format OutputFormat, pretty bool) error {
	switch format {
	case FormatJSON:
		rounds := season.Rounds
		if rounds == nil {
			rounds = []afl.Round{}
		}
		return writeJSON(w, rounds, pretty)
	case FormatText:
		return writeText(w, season)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(season))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as JSON
func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// writeText outputs the season as human-readable text, one block per round
func writeText(w io.Writer, season afl.Season) error {
	if len(season.Rounds) == 0 {
		_, err := fmt.Fprintln(w, "No matches found.")
		return err
	}

	var b strings.Builder
	for i, round := range season.Rounds {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(round.Title)
		b.WriteString("\n")
		for _, m := range round.Matches {
			b.WriteString("  ")
			b.WriteString(formatMatch(m))
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\nTotal: %d matches in %d rounds\n", season.MatchCount(), len(season.Rounds))

	_, err := io.WriteString(w, b.String())
	return err
}

// formatMatch renders one match line, e.g.
// "Carlton 9.10 (64) vs Richmond 14.13 (97) at M.C.G., Thu 21-Mar-2019 7:25 PM, crowd 85,016, won by Richmond"
func formatMatch(m afl.Match) string {
	if m.Bye {
		return m.Teams[0].Name + ": Bye"
	}

	parts := []string{
		fmt.Sprintf("%s vs %s at %s", formatTeam(m.Teams[0]), formatTeam(m.Teams[1]), m.Venue),
		m.Date.Format(dateLayout),
	}
	if m.Attendees > 0 {
		parts = append(parts, printer.Sprintf("crowd %d", m.Attendees))
	}
	if m.Drawn() {
		parts = append(parts, "drawn")
	} else {
		parts = append(parts, "won by "+m.Winner)
	}

	return strings.Join(parts, ", ")
}

func formatTeam(t afl.TeamMatch) string {
	final, ok := t.FinalScore()
	if !ok {
		return t.Name
	}
	return fmt.Sprintf("%s %s (%d)", t.Name, final, final.Total())
}
