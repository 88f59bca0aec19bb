// Package noveltyneat is the public entry point for running
// novelty-driven neuroevolution: it wires configuration, the evolution
// engine, the runtime worker pool and the persistence layer together
// behind a small client.
package noveltyneat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"noveltyneat/internal/config"
	"noveltyneat/internal/evo"
	"noveltyneat/internal/model"
	"noveltyneat/internal/runtime"
	"noveltyneat/internal/storage"
)

const defaultDBPath = "noveltyneat.db"

// Evaluator is re-exported so callers only import this package.
type Evaluator = runtime.Evaluator

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc = runtime.EvaluatorFunc

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store       storage.Store
	initialized bool
}

// RunRequest configures one evolution run. Zero fields fall back to
// defaults; Parameters nil means the reference parameter set.
type RunRequest struct {
	RunID              string
	Parameters         *config.Parameters
	Generations        int
	Workers            int
	ResumePopulationID string
	CheckpointEvery    int
}

type RunSummary struct {
	RunID        string
	PopulationID string
	Generations  int
	Solved       bool
	Winner       *evo.Individual
	History      []evo.Statistics
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) ensureInit(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Run executes a full evolution run against the evaluator, checkpointing
// the population along the way and recording the run in the store.
func (c *Client) Run(ctx context.Context, req RunRequest, evaluator Evaluator) (RunSummary, error) {
	if evaluator == nil {
		return RunSummary{}, errors.New("evaluator is required")
	}
	if req.Generations <= 0 {
		req.Generations = 100
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	params := config.Default()
	if req.Parameters != nil {
		params = *req.Parameters
	}
	if err := params.Validate(); err != nil {
		return RunSummary{}, err
	}
	cfg, err := params.EvoConfig()
	if err != nil {
		return RunSummary{}, err
	}

	if err := c.ensureInit(ctx); err != nil {
		return RunSummary{}, err
	}

	population, err := c.preparePopulation(ctx, cfg, req.ResumePopulationID)
	if err != nil {
		return RunSummary{}, err
	}

	driver, err := runtime.NewRuntime(population, evaluator, req.Workers)
	if err != nil {
		return RunSummary{}, err
	}

	populationID := req.RunID
	summary := RunSummary{RunID: req.RunID, PopulationID: populationID}
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	for generation := 0; generation < req.Generations; generation++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		step, err := driver.Step(ctx)
		if err != nil {
			return summary, err
		}
		if step.Solution != nil {
			summary.Solved = true
			summary.Winner = step.Solution
			break
		}
		summary.History = append(summary.History, step.Statistics)
		summary.Generations++

		if req.CheckpointEvery > 0 && (generation+1)%req.CheckpointEvery == 0 {
			if err := c.store.SavePopulation(ctx, population.ToRecord(populationID)); err != nil {
				return summary, fmt.Errorf("checkpoint population: %w", err)
			}
		}
	}

	if err := c.store.SavePopulation(ctx, population.ToRecord(populationID)); err != nil {
		return summary, fmt.Errorf("save population: %w", err)
	}

	history := make([]model.GenerationStatsRecord, 0, len(summary.History))
	for _, stats := range summary.History {
		history = append(history, stats.ToRecord())
	}
	if err := c.store.SaveHistory(ctx, req.RunID, history); err != nil {
		return summary, fmt.Errorf("save history: %w", err)
	}

	if err := c.store.SaveRun(ctx, model.RunRecord{
		ID:             req.RunID,
		CreatedAtUTC:   createdAt,
		Seed:           params.Seed,
		PopulationSize: params.Setup.PopulationSize,
		Generations:    summary.Generations,
		Solved:         summary.Solved,
		PopulationID:   populationID,
	}); err != nil {
		return summary, fmt.Errorf("save run: %w", err)
	}
	return summary, nil
}

func (c *Client) preparePopulation(ctx context.Context, cfg evo.Config, resumeID string) (*evo.Population, error) {
	if resumeID == "" {
		return evo.NewPopulation(cfg)
	}

	record, ok, err := c.store.GetPopulation(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("population not found: %s", resumeID)
	}
	return evo.PopulationFromRecord(cfg, record)
}

// Runs lists recorded runs, oldest first.
func (c *Client) Runs(ctx context.Context) ([]model.RunRecord, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx)
}

// History fetches the per-generation statistics of a recorded run.
func (c *Client) History(ctx context.Context, runID string) ([]model.GenerationStatsRecord, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	history, ok, err := c.store.GetHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("history not found for run id: %s", runID)
	}
	return history, nil
}

// Population fetches a saved population checkpoint.
func (c *Client) Population(ctx context.Context, id string) (model.PopulationRecord, error) {
	if id == "" {
		return model.PopulationRecord{}, errors.New("population id is required")
	}
	if err := c.ensureInit(ctx); err != nil {
		return model.PopulationRecord{}, err
	}
	record, ok, err := c.store.GetPopulation(ctx, id)
	if err != nil {
		return model.PopulationRecord{}, err
	}
	if !ok {
		return model.PopulationRecord{}, fmt.Errorf("population not found: %s", id)
	}
	return record, nil
}
