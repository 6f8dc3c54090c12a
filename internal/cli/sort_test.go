package cli

import (
	"testing"
	"time"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

func sortFixture() []afl.Round {
	return []afl.Round{{
		Title: "Round 1",
		Matches: []afl.Match{
			afl.NewByeMatch("Fremantle"),
			played("A", 10, 0, "B", 9, 0, bounce.Add(-24*time.Hour), "X", 20000), // margin 6
			played("C", 20, 0, "D", 5, 0, bounce, "X", 80000),                    // margin 90
			played("E", 8, 0, "F", 10, 0, bounce.Add(24*time.Hour), "X", 40000),  // margin 12
		},
	}}
}

func firstTeams(r afl.Round) []string {
	names := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		names[i] = m.Teams[0].Name
	}
	return names
}

func TestSortRounds(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByPage, []string{"Fremantle", "A", "C", "E"}},
		{SortByDate, []string{"A", "C", "E", "Fremantle"}},
		{SortByCrowd, []string{"C", "E", "A", "Fremantle"}},
		{SortByMargin, []string{"C", "E", "A", "Fremantle"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			rounds := sortFixture()
			got := firstTeams(sortRounds(rounds, tt.order)[0])
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sortRounds(%q) = %v, want %v", tt.order, got, tt.want)
				}
			}
			if rounds[0].Matches[0].Teams[0].Name != "Fremantle" {
				t.Error("sortRounds should not reorder the input")
			}
		})
	}
}

func TestSortOrder_Valid(t *testing.T) {
	for _, o := range []SortOrder{SortByPage, SortByDate, SortByCrowd, SortByMargin} {
		if !o.Valid() {
			t.Errorf("%q should be valid", o)
		}
	}
	if SortOrder("title").Valid() {
		t.Error("title should not be valid")
	}
}
