package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
)

const fixtureFilePrefix = "fixtures_"

var fixtureHeader = []string{
	"id",
	"matchday",
	"utcDate",
	"status",
	"home_team",
	"away_team",
	"home_team_id",
	"away_team_id",
	"season",
	"home_score",
	"away_score",
}

// FixtureStore reads and writes fixtures_<season>.csv files.
type FixtureStore struct {
	dir string
}

func NewFixtureStore(dir string) *FixtureStore {
	return &FixtureStore{dir: dir}
}

func (s *FixtureStore) ListBySeason(_ context.Context, season int) ([]fixture.Fixture, error) {
	path := s.fixturePath(season)
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no fixture file for season %s", fixture.ErrDataUnavailable, fixture.SeasonLabel(season))
	}
	if err != nil {
		return nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file, fixtureHeader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	fixtures := make([]fixture.Fixture, 0, len(records))
	for i, record := range records {
		row, err := parseFixtureRecord(record)
		if err != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", filepath.Base(path), i+2, err)
		}
		fixtures = append(fixtures, row)
	}
	return fixtures, nil
}

func (s *FixtureStore) Seasons(_ context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	seasons := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		season, ok := seasonFromFilename(entry.Name())
		if !ok {
			continue
		}
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons, nil
}

func (s *FixtureStore) ReplaceSeason(_ context.Context, season int, fixtures []fixture.Fixture) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	records := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		records = append(records, fixtureRecord(f))
	}
	if err := writeFile(s.fixturePath(season), fixtureHeader, records); err != nil {
		return fmt.Errorf("write fixture file: %w", err)
	}
	return nil
}

func (s *FixtureStore) fixturePath(season int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d.csv", fixtureFilePrefix, season))
}

func seasonFromFilename(name string) (int, bool) {
	rest, found := strings.CutPrefix(name, fixtureFilePrefix)
	if !found {
		return 0, false
	}
	digits, found := strings.CutSuffix(rest, ".csv")
	if !found {
		return 0, false
	}
	season, err := strconv.Atoi(digits)
	if err != nil || season <= 0 {
		return 0, false
	}
	return season, true
}

func parseFixtureRecord(record []string) (fixture.Fixture, error) {
	refID, err := parseInt64(record[0])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("id: %w", err)
	}
	matchday, err := parseCount(record[1])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("matchday: %w", err)
	}
	kickoffAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[2]))
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("utcDate: invalid timestamp %q", record[2])
	}
	homeTeamRefID, err := parseInt64(record[6])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("home_team_id: %w", err)
	}
	awayTeamRefID, err := parseInt64(record[7])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("away_team_id: %w", err)
	}
	season, err := parseInt(record[8])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("season: %w", err)
	}
	homeScore, err := parseOptionalScore(record[9])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("home_score: %w", err)
	}
	awayScore, err := parseOptionalScore(record[10])
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("away_score: %w", err)
	}

	return fixture.Fixture{
		RefID:         refID,
		Season:        season,
		Matchday:      matchday,
		KickoffAt:     kickoffAt.UTC(),
		Status:        fixture.NormalizeStatus(record[3]),
		HomeTeam:      strings.TrimSpace(record[4]),
		AwayTeam:      strings.TrimSpace(record[5]),
		HomeTeamRefID: homeTeamRefID,
		AwayTeamRefID: awayTeamRefID,
		HomeScore:     homeScore,
		AwayScore:     awayScore,
	}, nil
}

func fixtureRecord(f fixture.Fixture) []string {
	return []string{
		strconv.FormatInt(f.RefID, 10),
		strconv.Itoa(f.Matchday),
		f.KickoffAt.UTC().Format(time.RFC3339),
		f.Status,
		f.HomeTeam,
		f.AwayTeam,
		strconv.FormatInt(f.HomeTeamRefID, 10),
		strconv.FormatInt(f.AwayTeamRefID, 10),
		strconv.Itoa(f.Season),
		formatOptionalScore(f.HomeScore),
		formatOptionalScore(f.AwayScore),
	}
}
