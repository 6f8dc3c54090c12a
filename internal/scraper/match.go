package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

const (
	// dateLayout matches the first four tokens of a match's date line,
	// e.g. "Thu 21-Mar-2019 7:25 PM"
	dateLayout = "Mon 2-Jan-2006 3:04 PM"

	// dateOnlyLayout covers date lines that carry no start time
	dateOnlyLayout = "Mon 2-Jan-2006"

	playedCells = 8
	byeCells    = 2
)

// parseMatch parses a single match table. Played matches have eight cells:
//
//	team 1 | team 1 quarters | team 1 final | date, attendance and venue
//	team 2 | team 2 quarters | team 2 final | winner
//
// Byes have two: the team name and the word "Bye".
func parseMatch(table *goquery.Selection) (afl.Match, error) {
	cells := table.Find("td")

	switch cells.Length() {
	case playedCells:
		return parsePlayedMatch(cells)
	case byeCells:
		return afl.NewByeMatch(parseByeTeam(cells.Eq(0)).Name), nil
	}

	return afl.Match{}, fmt.Errorf("%w: %d cells", afl.ErrMalformedMatch, cells.Length())
}

func parsePlayedMatch(cells *goquery.Selection) (afl.Match, error) {
	home, err := parsePlayedTeam(cells.Eq(0), cells.Eq(1))
	if err != nil {
		return afl.Match{}, err
	}
	away, err := parsePlayedTeam(cells.Eq(4), cells.Eq(5))
	if err != nil {
		return afl.Match{}, err
	}

	info, err := parseMatchInfo(cells.Eq(3))
	if err != nil {
		return afl.Match{}, err
	}

	// The winner cell reads e.g. "<b>Richmond</b> won by 33 pts". Drawn
	// matches have no bold name.
	winner := cellText(cells.Eq(7).Find("b").First())

	return afl.NewPlayedMatch(home, away, info.date, info.venue, info.attendees, winner), nil
}

// parseByeTeam reads the team from the name cell of a bye
func parseByeTeam(name *goquery.Selection) afl.TeamMatch {
	return afl.TeamMatch{Name: cellText(name), Scores: []afl.Score{}}
}

// parsePlayedTeam reads a team's name and its space-separated quarter scores,
// e.g. "3.1 5.4 8.7 9.10"
func parsePlayedTeam(name, scores *goquery.Selection) (afl.TeamMatch, error) {
	team := afl.TeamMatch{Name: cellText(name)}

	tokens := strings.Fields(scores.Text())
	if len(tokens) == 0 {
		return afl.TeamMatch{}, afl.NewFieldError("scores", scores.Text(), fmt.Errorf("no scores for %s", team.Name))
	}

	team.Scores = make([]afl.Score, 0, len(tokens))
	for _, tok := range tokens {
		score, err := afl.ParseScore(tok)
		if err != nil {
			return afl.TeamMatch{}, err
		}
		team.Scores = append(team.Scores, score)
	}

	return team, nil
}

type matchInfo struct {
	date      time.Time
	venue     string
	attendees int
}

// parseMatchInfo reads the misc cell, which mixes text and labels:
//
//	Thu 21-Mar-2019 7:25 PM (7:25 PM) <b>Att:</b> 85,016 <b>Venue:</b> <a>M.C.G.</a>
//
// Matches played without a crowd have no attendance label and report zero.
func parseMatchInfo(cell *goquery.Selection) (matchInfo, error) {
	var (
		dateText string
		label    string
		values   = map[string]*strings.Builder{}
	)

	cell.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "b" {
			label = strings.TrimSuffix(strings.ToLower(cellText(node)), ":")
			values[label] = &strings.Builder{}
			return
		}
		if label == "" {
			if dateText == "" {
				dateText = strings.TrimSpace(node.Text())
			}
			return
		}
		values[label].WriteString(node.Text())
	})

	date, err := parseMatchDate(dateText)
	if err != nil {
		return matchInfo{}, err
	}
	info := matchInfo{date: date}

	venue, ok := values["venue"]
	if !ok || strings.TrimSpace(venue.String()) == "" {
		return matchInfo{}, afl.NewFieldError("venue", cell.Text(), errors.New("no venue"))
	}
	info.venue = strings.TrimFunc(venue.String(), unicode.IsSpace)

	if att, ok := values["att"]; ok {
		info.attendees, err = parseAttendance(att.String())
		if err != nil {
			return matchInfo{}, err
		}
	}

	return info, nil
}

// parseMatchDate parses the leading "<weekday> <day>-<month>-<year> <h>:<mm> <AM|PM>"
// tokens of a date line. The wall-clock time is recorded as UTC. A line with no
// start time at all ("Sat 2-May-1908") parses as midnight; a start time that is
// present but unreadable is an error.
func parseMatchDate(text string) (time.Time, error) {
	tokens := strings.Fields(text)

	if len(tokens) == 2 || (len(tokens) > 2 && strings.HasPrefix(tokens[2], "(")) {
		t, err := time.ParseInLocation(dateOnlyLayout, strings.Join(tokens[:2], " "), time.UTC)
		if err != nil {
			return time.Time{}, afl.NewFieldError("date", text, err)
		}
		return t, nil
	}

	if len(tokens) < 4 {
		return time.Time{}, afl.NewFieldError("date", text, errors.New("expected e.g. Thu 21-Mar-2019 7:25 PM"))
	}
	t, err := time.ParseInLocation(dateLayout, strings.Join(tokens[:4], " "), time.UTC)
	if err != nil {
		return time.Time{}, afl.NewFieldError("date", text, err)
	}
	return t, nil
}

// parseAttendance parses a crowd figure such as " 85,016 "
func parseAttendance(text string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, afl.NewFieldError("attendance", text, errors.New("not a number"))
	}
	return n, nil
}

// cellText returns the text of a cell with surrounding whitespace, including
// non-breaking spaces, removed
func cellText(sel *goquery.Selection) string {
	return strings.TrimFunc(sel.Text(), unicode.IsSpace)
}
