package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"noveltyneat/internal/evo"
)

// Evaluator judges one individual and reports what the run learned from
// it. Implementations are called concurrently from the worker pool and
// must not share mutable state across calls without synchronization.
type Evaluator interface {
	Evaluate(ctx context.Context, individual *evo.Individual) (evo.Progress, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, individual *evo.Individual) (evo.Progress, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, individual *evo.Individual) (evo.Progress, error) {
	return f(ctx, individual)
}

// StepResult is the outcome of one evaluate-and-transition step. When a
// solution was found the population is left untouched so the winning
// individual can still be inspected in place.
type StepResult struct {
	Statistics evo.Statistics
	Solution   *evo.Individual
}

// RunResult aggregates a whole run: per-generation statistics and the
// solution, if one was found before the generation budget ran out.
type RunResult struct {
	History  []evo.Statistics
	Solution *evo.Individual
}

func (r RunResult) Solved() bool {
	return r.Solution != nil
}

// Runtime drives a population against an evaluator with a bounded worker
// pool.
type Runtime struct {
	population *evo.Population
	evaluator  Evaluator
	workers    int
}

// NewRuntime wires population and evaluator together. Workers below one
// is an error; pass 1 for strictly sequential evaluation.
func NewRuntime(population *evo.Population, evaluator Evaluator, workers int) (*Runtime, error) {
	if population == nil {
		return nil, fmt.Errorf("population is required")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if workers < 1 {
		return nil, fmt.Errorf("workers must be >= 1")
	}
	return &Runtime{population: population, evaluator: evaluator, workers: workers}, nil
}

// Population exposes the driven population, primarily for checkpointing.
func (r *Runtime) Population() *evo.Population {
	return r.population
}

// Step evaluates the whole population in parallel and, unless a solution
// surfaced, advances it one generation.
func (r *Runtime) Step(ctx context.Context) (StepResult, error) {
	evaluationStart := time.Now()
	progress, err := r.evaluate(ctx)
	if err != nil {
		return StepResult{}, err
	}
	evaluationDuration := time.Since(evaluationStart)

	for _, report := range progress {
		if winner := report.Solution(); winner != nil {
			return StepResult{Solution: winner}, nil
		}
	}

	stats, err := r.population.NextGeneration(progress)
	if err != nil {
		return StepResult{}, err
	}
	stats.EvaluationDuration = evaluationDuration
	return StepResult{Statistics: stats}, nil
}

// Run steps until a solution is found, the generation budget is spent or
// the context is canceled.
func (r *Runtime) Run(ctx context.Context, generations int) (RunResult, error) {
	if generations <= 0 {
		return RunResult{}, fmt.Errorf("generations must be > 0")
	}

	var result RunResult
	for generation := 0; generation < generations; generation++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		step, err := r.Step(ctx)
		if err != nil {
			return result, err
		}
		if step.Solution != nil {
			result.Solution = step.Solution
			return result, nil
		}
		result.History = append(result.History, step.Statistics)
	}
	return result, nil
}

// evaluate fans the population out over the worker pool and collects
// progress index-aligned with the individuals.
func (r *Runtime) evaluate(ctx context.Context) ([]evo.Progress, error) {
	individuals := r.population.Individuals()

	type job struct {
		idx        int
		individual *evo.Individual
	}
	type result struct {
		idx      int
		progress evo.Progress
		err      error
	}

	jobs := make(chan job)
	results := make(chan result, len(individuals))

	workerCount := r.workers
	if workerCount > len(individuals) {
		workerCount = len(individuals)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				progress, err := r.evaluator.Evaluate(ctx, j.individual)
				results <- result{idx: j.idx, progress: progress, err: err}
			}
		}()
	}

	for i := range individuals {
		jobs <- job{idx: i, individual: individuals[i]}
	}
	close(jobs)

	wg.Wait()
	close(results)

	progress := make([]evo.Progress, len(individuals))
	for res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("evaluate individual %d: %w", res.idx, res.err)
		}
		progress[res.idx] = res.progress
	}
	return progress, nil
}
