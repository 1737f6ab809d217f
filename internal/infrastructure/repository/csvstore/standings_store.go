package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

const standingsFilePrefix = "championship_standings_"

var standingsHeader = []string{
	"position",
	"team_name",
	"team_id",
	"points",
	"goal_difference",
	"season",
}

// StandingsStore reads and writes championship_standings_<season>.csv
// files. A missing file is an absent signal, not an error.
type StandingsStore struct {
	dir string
}

func NewStandingsStore(dir string) *StandingsStore {
	return &StandingsStore{dir: dir}
}

func (s *StandingsStore) ListBySeason(_ context.Context, season int) ([]mapping.DivisionStanding, error) {
	path := s.standingsPath(season)
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open standings file: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file, standingsHeader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	standings := make([]mapping.DivisionStanding, 0, len(records))
	for i, record := range records {
		row, err := parseStandingRecord(record)
		if err != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", filepath.Base(path), i+2, err)
		}
		standings = append(standings, row)
	}
	return standings, nil
}

func (s *StandingsStore) ReplaceSeason(_ context.Context, season int, standings []mapping.DivisionStanding) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	records := make([][]string, 0, len(standings))
	for _, row := range standings {
		records = append(records, standingRecord(row))
	}
	if err := writeFile(s.standingsPath(season), standingsHeader, records); err != nil {
		return fmt.Errorf("write standings file: %w", err)
	}
	return nil
}

func (s *StandingsStore) standingsPath(season int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d.csv", standingsFilePrefix, season))
}

func parseStandingRecord(record []string) (mapping.DivisionStanding, error) {
	position, err := parseInt(record[0])
	if err != nil {
		return mapping.DivisionStanding{}, fmt.Errorf("position: %w", err)
	}
	teamRefID, err := parseInt64(record[2])
	if err != nil {
		return mapping.DivisionStanding{}, fmt.Errorf("team_id: %w", err)
	}
	points, err := parseInt(record[3])
	if err != nil {
		return mapping.DivisionStanding{}, fmt.Errorf("points: %w", err)
	}
	goalDifference, err := parseInt(record[4])
	if err != nil {
		return mapping.DivisionStanding{}, fmt.Errorf("goal_difference: %w", err)
	}
	season, err := parseInt(record[5])
	if err != nil {
		return mapping.DivisionStanding{}, fmt.Errorf("season: %w", err)
	}

	return mapping.DivisionStanding{
		Position:       position,
		TeamName:       strings.TrimSpace(record[1]),
		TeamRefID:      teamRefID,
		Points:         points,
		GoalDifference: goalDifference,
		Season:         season,
	}, nil
}

func standingRecord(row mapping.DivisionStanding) []string {
	return []string{
		strconv.Itoa(row.Position),
		row.TeamName,
		strconv.FormatInt(row.TeamRefID, 10),
		strconv.Itoa(row.Points),
		strconv.Itoa(row.GoalDifference),
		strconv.Itoa(row.Season),
	}
}
