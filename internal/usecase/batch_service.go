package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

type BatchInput struct {
	Pairs      []SeasonPair
	MaxWorkers int
}

// SeasonPair names one comparison to run: a current season measured
// against an earlier one.
type SeasonPair struct {
	CurrentSeason    int `json:"current_season"`
	ComparisonSeason int `json:"comparison_season"`
}

type BatchResult struct {
	TaskCount    int               `json:"task_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Tasks        []BatchTaskResult `json:"tasks"`
}

type BatchTaskResult struct {
	CurrentSeason    int     `json:"current_season"`
	ComparisonSeason int     `json:"comparison_season"`
	Status           string  `json:"status"`
	Rows             int     `json:"rows"`
	MappedPercent    float64 `json:"mapped_percent"`
	DurationMs       int64   `json:"duration_ms"`
	Message          string  `json:"message,omitempty"`
}

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

// comparisonRunner is the slice of ComparisonService the batch needs.
type comparisonRunner interface {
	Compare(ctx context.Context, currentSeason, comparisonSeason int) (ComparisonTable, error)
}

// BatchService pre-warms comparison tables for many season pairs in
// one call, typically ahead of a traffic spike or after a refresh.
type BatchService struct {
	comparisons comparisonRunner
}

func NewBatchService(comparisons comparisonRunner) *BatchService {
	return &BatchService{comparisons: comparisons}
}

func (s *BatchService) Run(ctx context.Context, input BatchInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.Run")
	defer span.End()

	if s.comparisons == nil {
		return BatchResult{}, fmt.Errorf("%w: no comparison service configured", ErrDependencyUnavailable)
	}

	pairs, err := normalizeBatchPairs(input.Pairs)
	if err != nil {
		return BatchResult{}, err
	}

	workerCount := normalizeBatchWorkerCount(input.MaxWorkers, len(pairs))
	result := BatchResult{
		TaskCount:   len(pairs),
		WorkerCount: workerCount,
		Tasks:       make([]BatchTaskResult, 0, len(pairs)),
	}

	results := make(chan BatchTaskResult, len(pairs))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, pair := range pairs {
		pair := pair
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BatchTaskResult{
				CurrentSeason:    pair.CurrentSeason,
				ComparisonSeason: pair.ComparisonSeason,
			}

			table, err := s.comparisons.Compare(ctx, pair.CurrentSeason, pair.ComparisonSeason)
			if err != nil {
				row.Status = batchStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = batchStatusSuccess
				row.Rows = len(table.Rows)
				row.MappedPercent = table.Report.SuccessRate
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].CurrentSeason != result.Tasks[j].CurrentSeason {
			return result.Tasks[i].CurrentSeason < result.Tasks[j].CurrentSeason
		}
		return result.Tasks[i].ComparisonSeason < result.Tasks[j].ComparisonSeason
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func normalizeBatchPairs(raw []SeasonPair) ([]SeasonPair, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: pairs is required", ErrInvalidInput)
	}

	seen := make(map[SeasonPair]struct{}, len(raw))
	pairs := make([]SeasonPair, 0, len(raw))
	for _, pair := range raw {
		if err := validateSeasonPair(pair.CurrentSeason, pair.ComparisonSeason); err != nil {
			return nil, err
		}
		if _, exists := seen[pair]; exists {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func normalizeBatchWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
