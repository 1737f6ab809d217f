package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
)

func synthTemplate() []fixture.Fixture {
	template := generateSeason(2025, withClubs("Burnley FC", "Leeds United FC", "Sunderland AFC"))
	for i := 150; i < len(template); i++ {
		template[i].Status = fixture.StatusTimed
		template[i].HomeScore = nil
		template[i].AwayScore = nil
	}
	return template
}

func TestSynthService_SynthesizeBaseline_TransformsTemplate(t *testing.T) {
	t.Parallel()

	template := synthTemplate()
	source := &stubSeasonSource{bySeason: map[int][]fixture.Fixture{2025: template}}
	writer := &stubFixtureWriter{}
	service := NewSynthService(source, writer, nil)

	result, err := service.SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 2025})
	if err != nil {
		t.Fatalf("SynthesizeBaseline error: %v", err)
	}
	if result.TemplateSeason != 2025 || result.BaselineSeason != 2024 {
		t.Fatalf("unexpected seasons: %+v", result)
	}
	if result.FixtureCount != 156 || result.ScoredCount != 150 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	baseline := writer.replaced[2024]
	if len(baseline) != len(template) {
		t.Fatalf("expected %d baseline fixtures, got %d", len(template), len(baseline))
	}

	for i, row := range baseline {
		if row.Season != 2024 {
			t.Fatalf("expected season 2024 at index %d, got %d", i, row.Season)
		}
		if row.RefID != template[i].RefID-380 {
			t.Fatalf("unexpected ref id at index %d: got %d want %d", i, row.RefID, template[i].RefID-380)
		}
		if !row.KickoffAt.Equal(template[i].KickoffAt.AddDate(-1, 0, 0)) {
			t.Fatalf("unexpected kickoff at index %d: %v", i, row.KickoffAt)
		}
		switch row.HomeTeam {
		case "Burnley FC", "Leeds United FC", "Sunderland AFC":
			t.Fatalf("promoted club not substituted at index %d: %s", i, row.HomeTeam)
		case "Southampton FC":
			if row.HomeTeamRefID != 340 {
				t.Fatalf("expected ref id 340 for Southampton FC, got %d", row.HomeTeamRefID)
			}
		case "Leicester City FC":
			if row.HomeTeamRefID != 338 {
				t.Fatalf("expected ref id 338 for Leicester City FC, got %d", row.HomeTeamRefID)
			}
		case "Ipswich Town FC":
			if row.HomeTeamRefID != 1077 {
				t.Fatalf("expected ref id 1077 for Ipswich Town FC, got %d", row.HomeTeamRefID)
			}
		}
		switch row.AwayTeam {
		case "Burnley FC", "Leeds United FC", "Sunderland AFC":
			t.Fatalf("promoted club not substituted at index %d: %s", i, row.AwayTeam)
		}

		if fixture.IsFinishedStatus(template[i].Status) {
			if row.HomeScore == nil || row.AwayScore == nil {
				t.Fatalf("expected scores for finished template row %d", i)
			}
			if *row.HomeScore < 0 || *row.HomeScore > 5 || *row.AwayScore < 0 || *row.AwayScore > 5 {
				t.Fatalf("score out of range at index %d: %d-%d", i, *row.HomeScore, *row.AwayScore)
			}
		} else {
			if row.HomeScore != nil || row.AwayScore != nil {
				t.Fatalf("expected no scores for unfinished template row %d", i)
			}
			if row.Status != fixture.StatusTimed {
				t.Fatalf("expected template status preserved at index %d, got %s", i, row.Status)
			}
		}
	}
}

func TestSynthService_SynthesizeBaseline_DeterministicPerSeed(t *testing.T) {
	t.Parallel()

	template := synthTemplate()
	source := &stubSeasonSource{bySeason: map[int][]fixture.Fixture{2025: template}}

	first := &stubFixtureWriter{}
	if _, err := NewSynthService(source, first, nil).SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 2025, Seed: 42}); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second := &stubFixtureWriter{}
	if _, err := NewSynthService(source, second, nil).SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 2025, Seed: 42}); err != nil {
		t.Fatalf("second run error: %v", err)
	}

	left := first.replaced[2024]
	right := second.replaced[2024]
	if len(left) != len(right) {
		t.Fatalf("run lengths differ: %d vs %d", len(left), len(right))
	}
	for i := 0; i < len(left); i++ {
		if (left[i].HomeScore == nil) != (right[i].HomeScore == nil) {
			t.Fatalf("score presence differs at index %d", i)
		}
		if left[i].HomeScore == nil {
			continue
		}
		if *left[i].HomeScore != *right[i].HomeScore || *left[i].AwayScore != *right[i].AwayScore {
			t.Fatalf("seeded scores differ at index %d: %d-%d vs %d-%d",
				i, *left[i].HomeScore, *left[i].AwayScore, *right[i].HomeScore, *right[i].AwayScore)
		}
	}
}

func TestSynthService_SynthesizeBaseline_CustomSubstitutions(t *testing.T) {
	t.Parallel()

	template := synthTemplate()
	source := &stubSeasonSource{bySeason: map[int][]fixture.Fixture{2025: template}}
	writer := &stubFixtureWriter{}
	service := NewSynthService(source, writer, nil)

	// An empty non-nil map disables renaming entirely.
	_, err := service.SynthesizeBaseline(context.Background(), SynthInput{
		TemplateSeason: 2025,
		Substitutions:  map[string]string{},
	})
	if err != nil {
		t.Fatalf("SynthesizeBaseline error: %v", err)
	}

	foundBurnley := false
	for _, row := range writer.replaced[2024] {
		if row.HomeTeam == "Burnley FC" || row.AwayTeam == "Burnley FC" {
			foundBurnley = true
			break
		}
	}
	if !foundBurnley {
		t.Fatal("expected Burnley FC to survive with empty substitutions")
	}
}

func TestSynthService_SynthesizeBaseline_Validation(t *testing.T) {
	t.Parallel()

	source := &stubSeasonSource{bySeason: map[int][]fixture.Fixture{
		2025: synthTemplate()[:99],
	}}

	service := NewSynthService(source, &stubFixtureWriter{}, nil)
	if _, err := service.SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 2025}); !errors.Is(err, fixture.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable for a short template, got %v", err)
	}

	service = NewSynthService(source, nil, nil)
	if _, err := service.SynthesizeBaseline(context.Background(), SynthInput{TemplateSeason: 2025}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without writer, got %v", err)
	}
}
