package afl

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleMatch() Match {
	return NewPlayedMatch(
		TeamMatch{Name: "Carlton", Scores: []Score{{4, 1}, {6, 4}, {8, 7}, {9, 10}}},
		TeamMatch{Name: "Richmond", Scores: []Score{{3, 2}, {7, 7}, {11, 10}, {14, 13}}},
		time.Date(2019, time.March, 21, 19, 25, 0, 0, time.UTC),
		"M.C.G.",
		85016,
		"Richmond",
	)
}

func TestTeamMatch_FinalScore(t *testing.T) {
	m := sampleMatch()

	final, ok := m.Teams[0].FinalScore()
	if !ok {
		t.Fatal("FinalScore() ok = false for a played team")
	}
	if final.Total() != 64 {
		t.Errorf("FinalScore().Total() = %d, want 64", final.Total())
	}

	bye := NewByeMatch("Fremantle")
	if _, ok := bye.Teams[0].FinalScore(); ok {
		t.Error("FinalScore() ok = true for a bye")
	}
}

func TestNewByeMatch(t *testing.T) {
	m := NewByeMatch("Fremantle")

	if !m.Bye {
		t.Error("Bye = false, want true")
	}
	if len(m.Teams) != 1 {
		t.Fatalf("len(Teams) = %d, want 1", len(m.Teams))
	}
	if len(m.Teams[0].Scores) != 0 {
		t.Errorf("bye team has %d scores, want 0", len(m.Teams[0].Scores))
	}
	if m.Winner != "Fremantle" {
		t.Errorf("Winner = %q, want Fremantle", m.Winner)
	}
	if m.String() != "Fremantle vs Bye" {
		t.Errorf("String() = %q", m.String())
	}
	if m.Teams[0].String() != "Fremantle Bye" {
		t.Errorf("TeamMatch.String() = %q", m.Teams[0].String())
	}
}

func TestMatch_Helpers(t *testing.T) {
	m := sampleMatch()

	if m.String() != "Carlton vs Richmond" {
		t.Errorf("String() = %q", m.String())
	}
	if !m.Involves("richmond") {
		t.Error("Involves(richmond) = false")
	}
	if m.Involves("Geelong") {
		t.Error("Involves(Geelong) = true")
	}

	opp, ok := m.Opponent("Carlton")
	if !ok || opp.Name != "Richmond" {
		t.Errorf("Opponent(Carlton) = %q, %v", opp.Name, ok)
	}
	if _, ok := m.Opponent("Geelong"); ok {
		t.Error("Opponent(Geelong) ok = true")
	}
	if m.Drawn() {
		t.Error("Drawn() = true for a decided match")
	}

	draw := NewPlayedMatch(
		TeamMatch{Name: "A", Scores: []Score{{10, 10}}},
		TeamMatch{Name: "B", Scores: []Score{{11, 4}}},
		time.Time{}, "Venue", 0, "",
	)
	if !draw.Drawn() {
		t.Error("Drawn() = false for level scores with no winner")
	}
}

func TestMatch_JSON(t *testing.T) {
	data, err := json.Marshal(sampleMatch())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if raw["date"] != float64(1553196300) {
		t.Errorf("date = %v, want epoch seconds 1553196300", raw["date"])
	}
	if raw["venue"] != "M.C.G." {
		t.Errorf("venue = %v", raw["venue"])
	}
	if raw["attendees"] != float64(85016) {
		t.Errorf("attendees = %v", raw["attendees"])
	}
	if strings.Contains(string(data), `"match"`) {
		t.Error("team entries should not reference their match")
	}
	if !strings.Contains(string(data), `{"goals":9,"behinds":10,"total":64}`) {
		t.Errorf("final score missing from %s", data)
	}

	var decoded Match
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal(Match) error = %v", err)
	}
	if !decoded.Date.Equal(sampleMatch().Date) {
		t.Errorf("decoded Date = %v", decoded.Date)
	}
	final, _ := decoded.Teams[1].FinalScore()
	if final.Total() != 97 {
		t.Errorf("decoded Richmond total = %d, want 97", final.Total())
	}
}

func TestMatch_JSONBye(t *testing.T) {
	data, err := json.Marshal(NewByeMatch("Fremantle"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"teams":[{"name":"Fremantle","scores":[]}],"date":null,"venue":null,"attendees":null,"winner":"Fremantle","bye":true}`
	if string(data) != want {
		t.Errorf("Marshal(bye) = %s, want %s", data, want)
	}
}

func TestRound_IsFinal(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Round 1", false},
		{"Qualifying Final", true},
		{"Grand Final", true},
		{"Semi Final", true},
		{"final", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := (Round{Title: tt.title}).IsFinal(); got != tt.want {
				t.Errorf("IsFinal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeason_MatchCount(t *testing.T) {
	s := Season{
		Year: 2019,
		Rounds: []Round{
			{Title: "Round 1", Matches: []Match{sampleMatch(), NewByeMatch("Fremantle")}},
			{Title: "Grand Final", Matches: []Match{sampleMatch()}},
		},
	}

	if s.MatchCount() != 3 {
		t.Errorf("MatchCount() = %d, want 3", s.MatchCount())
	}
}
