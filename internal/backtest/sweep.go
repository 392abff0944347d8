package backtest

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunSweep runs many independent jobs concurrently, each with fully
// isolated collaborators (§5 "parallel optimizer sweeps" via many
// independent engine instances). Grounded on
// internal/backtest/simulator.go's Simulator.sem-bounded concurrency,
// rewritten with errgroup as the idiomatic replacement for a hand-rolled
// sem chan struct{} + goroutine pattern. maxConcurrent <= 0 means
// unbounded.
func RunSweep(ctx context.Context, orchestrator *Orchestrator, jobs []BacktestJob, maxConcurrent int) ([]BacktestResult, error) {
	results := make([]BacktestResult, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		group.SetLimit(maxConcurrent)
	}

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			results[i] = orchestrator.Execute(groupCtx, job)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
