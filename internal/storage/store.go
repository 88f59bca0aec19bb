package storage

import (
	"context"

	"noveltyneat/internal/model"
)

// Store persists runs, population checkpoints and per-generation history.
type Store interface {
	Init(ctx context.Context) error
	SavePopulation(ctx context.Context, population model.PopulationRecord) error
	GetPopulation(ctx context.Context, id string) (model.PopulationRecord, bool, error)
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveHistory(ctx context.Context, runID string, history []model.GenerationStatsRecord) error
	GetHistory(ctx context.Context, runID string) ([]model.GenerationStatsRecord, bool, error)
}
