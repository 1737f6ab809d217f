package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

func TestStandingsStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStandingsStore(t.TempDir())
	ctx := context.Background()

	written := []mapping.DivisionStanding{
		{Position: 1, TeamName: "Leeds United", TeamRefID: 341, Points: 100, GoalDifference: 65, Season: 2024},
		{Position: 2, TeamName: "Burnley", TeamRefID: 328, Points: 100, GoalDifference: 53, Season: 2024},
		{Position: 3, TeamName: "Sheffield United", TeamRefID: 356, Points: 90, GoalDifference: 29, Season: 2024},
	}

	if err := store.ReplaceSeason(ctx, 2024, written); err != nil {
		t.Fatalf("ReplaceSeason error: %v", err)
	}

	read, err := store.ListBySeason(ctx, 2024)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(read) != len(written) {
		t.Fatalf("standings read got=%d want=%d", len(read), len(written))
	}
	for i := range written {
		if read[i] != written[i] {
			t.Fatalf("standing %d got=%+v want=%+v", i, read[i], written[i])
		}
	}
}

func TestStandingsStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStandingsStore(t.TempDir())

	read, err := store.ListBySeason(context.Background(), 2019)
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(read) != 0 {
		t.Fatalf("standings got=%+v want empty", read)
	}
}

func TestStandingsStore_RejectsMalformedRow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := strings.Join([]string{
		"position,team_name,team_id,points,goal_difference,season",
		"1,Leeds United,341,lots,65,2024",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "championship_standings_2024.csv"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write raw file: %v", err)
	}

	_, err := NewStandingsStore(dir).ListBySeason(context.Background(), 2024)
	if err == nil || !strings.Contains(err.Error(), "points") {
		t.Fatalf("malformed row error got=%v", err)
	}
}
