package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/comparison"
)

func TestBatchService_Run_MixedResults(t *testing.T) {
	t.Parallel()

	runner := &stubComparisonRunner{
		tables: map[SeasonPair]ComparisonTable{
			{CurrentSeason: 2025, ComparisonSeason: 2024}: {
				Rows:   make([]comparison.Row, 20),
				Report: MappingReport{SuccessRate: 98.5},
			},
			{CurrentSeason: 2024, ComparisonSeason: 2023}: {
				Rows:   make([]comparison.Row, 17),
				Report: MappingReport{SuccessRate: 91},
			},
		},
		errs: map[SeasonPair]error{
			{CurrentSeason: 2023, ComparisonSeason: 2022}: errors.New("season 2022 fixtures missing"),
		},
	}
	service := NewBatchService(runner)

	result, err := service.Run(context.Background(), BatchInput{
		Pairs: []SeasonPair{
			{CurrentSeason: 2025, ComparisonSeason: 2024},
			{CurrentSeason: 2023, ComparisonSeason: 2022},
			{CurrentSeason: 2024, ComparisonSeason: 2023},
		},
		MaxWorkers: 8,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.TaskCount != 3 || result.SuccessCount != 2 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.WorkerCount != 3 {
		t.Fatalf("expected workers clamped to task count, got %d", result.WorkerCount)
	}
	if len(result.Tasks) != 3 {
		t.Fatalf("expected 3 task rows, got %d", len(result.Tasks))
	}

	if result.Tasks[0].CurrentSeason != 2023 || result.Tasks[1].CurrentSeason != 2024 || result.Tasks[2].CurrentSeason != 2025 {
		t.Fatalf("tasks not sorted by season pair: %+v", result.Tasks)
	}

	failed := result.Tasks[0]
	if failed.Status != batchStatusFailed || failed.Message == "" || failed.Rows != 0 {
		t.Fatalf("unexpected failed task row: %+v", failed)
	}
	newest := result.Tasks[2]
	if newest.Status != batchStatusSuccess || newest.Rows != 20 || newest.MappedPercent != 98.5 {
		t.Fatalf("unexpected success task row: %+v", newest)
	}
}

func TestBatchService_Run_DeduplicatesPairs(t *testing.T) {
	t.Parallel()

	runner := &stubComparisonRunner{
		tables: map[SeasonPair]ComparisonTable{
			{CurrentSeason: 2025, ComparisonSeason: 2024}: {},
		},
	}
	service := NewBatchService(runner)

	result, err := service.Run(context.Background(), BatchInput{
		Pairs: []SeasonPair{
			{CurrentSeason: 2025, ComparisonSeason: 2024},
			{CurrentSeason: 2025, ComparisonSeason: 2024},
			{CurrentSeason: 2025, ComparisonSeason: 2024},
		},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.TaskCount != 1 {
		t.Fatalf("expected 1 task after dedupe, got %d", result.TaskCount)
	}
	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("expected 1 comparison call, got %d", got)
	}
}

func TestBatchService_Run_InputValidation(t *testing.T) {
	t.Parallel()

	service := NewBatchService(&stubComparisonRunner{})
	if _, err := service.Run(context.Background(), BatchInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty pairs, got %v", err)
	}

	input := BatchInput{Pairs: []SeasonPair{{CurrentSeason: 0, ComparisonSeason: 2024}}}
	if _, err := service.Run(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad pair, got %v", err)
	}

	service = NewBatchService(nil)
	valid := BatchInput{Pairs: []SeasonPair{{CurrentSeason: 2025, ComparisonSeason: 2024}}}
	if _, err := service.Run(context.Background(), valid); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without runner, got %v", err)
	}
}

func TestNormalizeBatchWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		value     int
		taskCount int
		want      int
	}{
		{name: "zero value defaults to one", value: 0, taskCount: 5, want: 1},
		{name: "clamped to pool ceiling", value: 10, taskCount: 5, want: 4},
		{name: "clamped to task count", value: 3, taskCount: 2, want: 2},
		{name: "no tasks", value: 2, taskCount: 0, want: 1},
		{name: "ceiling exactly", value: 4, taskCount: 10, want: 4},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeBatchWorkerCount(tc.value, tc.taskCount); got != tc.want {
				t.Fatalf("expected %d workers, got %d", tc.want, got)
			}
		})
	}
}

type stubComparisonRunner struct {
	tables map[SeasonPair]ComparisonTable
	errs   map[SeasonPair]error
	calls  atomic.Int32
}

func (s *stubComparisonRunner) Compare(_ context.Context, currentSeason, comparisonSeason int) (ComparisonTable, error) {
	s.calls.Add(1)
	pair := SeasonPair{CurrentSeason: currentSeason, ComparisonSeason: comparisonSeason}
	if err, ok := s.errs[pair]; ok {
		return ComparisonTable{}, err
	}
	return s.tables[pair], nil
}
