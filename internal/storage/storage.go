package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/afl-tables/internal/afl"
)

// ErrNotFound is returned when no file exists for the requested season
var ErrNotFound = errors.New("season not stored")

// Store handles persistence of scraped seasons
type Store struct {
	dir string
}

// New creates a new Store rooted at dir, creating the directory when needed.
func New(dir string) (*Store, error) {
	// Expand ~ to home directory
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir[1:], "/"))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the resolved store directory
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a season is stored in
func (s *Store) Path(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", year))
}

// SaveSeason writes a season to <year>.json, replacing any previous copy.
func (s *Store) SaveSeason(season afl.Season) error {
	data, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding season %d: %w", season.Year, err)
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".%d-*.json", season.Year))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing season %d: %w", season.Year, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing season %d: %w", season.Year, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing season %d: %w", season.Year, err)
	}

	if err := os.Rename(tmp.Name(), s.Path(season.Year)); err != nil {
		return fmt.Errorf("saving season %d: %w", season.Year, err)
	}

	return nil
}

// LoadSeason reads a stored season back. It returns ErrNotFound when the year
// has not been saved.
func (s *Store) LoadSeason(year int) (afl.Season, error) {
	data, err := os.ReadFile(s.Path(year))
	if err != nil {
		if os.IsNotExist(err) {
			return afl.Season{}, fmt.Errorf("season %d: %w", year, ErrNotFound)
		}
		return afl.Season{}, fmt.Errorf("reading season %d: %w", year, err)
	}

	var season afl.Season
	if err := json.Unmarshal(data, &season); err != nil {
		return afl.Season{}, fmt.Errorf("parsing season %d: %w", year, err)
	}

	return season, nil
}

// Years lists the stored seasons in ascending order
func (s *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var years []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)

	return years, nil
}
