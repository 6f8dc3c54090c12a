package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

func sampleSeason(year int) afl.Season {
	played := afl.NewPlayedMatch(
		afl.TeamMatch{Name: "Carlton", Scores: []afl.Score{{Goals: 2, Behinds: 3}, {Goals: 9, Behinds: 10}}},
		afl.TeamMatch{Name: "Richmond", Scores: []afl.Score{{Goals: 4, Behinds: 4}, {Goals: 14, Behinds: 13}}},
		time.Date(year, 3, 21, 19, 25, 0, 0, time.UTC), "M.C.G.", 85016, "Richmond",
	)
	return afl.Season{
		Year: year,
		Rounds: []afl.Round{
			{Title: "Round 1", Matches: []afl.Match{played, afl.NewByeMatch("Fremantle")}},
		},
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "seasons")

	store, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := New("~/afl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "afl"), store.Dir())
}

func TestSaveLoadSeason(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	season := sampleSeason(2019)
	require.NoError(t, store.SaveSeason(season))
	assert.FileExists(t, store.Path(2019))

	got, err := store.LoadSeason(2019)
	require.NoError(t, err)

	assert.Equal(t, 2019, got.Year)
	require.Len(t, got.Rounds, 1)
	require.Len(t, got.Rounds[0].Matches, 2)

	m := got.Rounds[0].Matches[0]
	assert.True(t, m.Date.Equal(season.Rounds[0].Matches[0].Date))
	assert.Equal(t, "M.C.G.", m.Venue)
	assert.Equal(t, 85016, m.Attendees)
	assert.Equal(t, "Richmond", m.Winner)
	final, ok := m.Teams[1].FinalScore()
	require.True(t, ok)
	assert.Equal(t, 97, final.Total())

	bye := got.Rounds[0].Matches[1]
	assert.True(t, bye.Bye)
	assert.Equal(t, "Fremantle", bye.Winner)
}

func TestSaveSeason_Overwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveSeason(sampleSeason(2020)))
	require.NoError(t, store.SaveSeason(afl.Season{Year: 2020}))

	got, err := store.LoadSeason(2020)
	require.NoError(t, err)
	assert.Empty(t, got.Rounds)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestLoadSeason_NotFound(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.LoadSeason(1897)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadSeason_Corrupt(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(1900), []byte("{not json"), 0644))

	_, err = store.LoadSeason(1900)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestYears(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, year := range []int{2020, 1908, 2019} {
		require.NoError(t, store.SaveSeason(afl.Season{Year: year}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "2018.txt"), []byte(""), 0644))

	years, err := store.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{1908, 2019, 2020}, years)
}
