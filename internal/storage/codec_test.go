package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/model"
)

func TestPopulationCodecRoundTrip(t *testing.T) {
	population := model.PopulationRecord{
		ID:         "pop-1",
		Generation: 3,
		NextID:     17,
		SplitCache: []model.SplitCacheEntry{{Input: 0, Output: 2, IDs: []uint64{5}}},
	}

	data, err := EncodePopulation(population)
	require.NoError(t, err)

	decoded, err := DecodePopulation(data)
	require.NoError(t, err)
	require.Equal(t, population.ID, decoded.ID)
	require.Equal(t, population.Generation, decoded.Generation)
	require.Equal(t, population.SplitCache, decoded.SplitCache)
	require.Equal(t, CurrentSchemaVersion, decoded.SchemaVersion)
	require.Equal(t, CurrentCodecVersion, decoded.CodecVersion)
}

func TestDecodePopulationRejectsVersionMismatch(t *testing.T) {
	stale := model.PopulationRecord{ID: "pop-1"}
	stale.SchemaVersion = 99
	stale.CodecVersion = CurrentCodecVersion
	data, err := json.Marshal(stale)
	require.NoError(t, err)

	_, err = DecodePopulation(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestRunCodecRoundTrip(t *testing.T) {
	run := model.RunRecord{ID: "run-1", Seed: 42, Solved: true}

	data, err := EncodeRun(run)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	require.Equal(t, run.ID, decoded.ID)
	require.Equal(t, run.Seed, decoded.Seed)
	require.True(t, decoded.Solved)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodePopulation([]byte("not json"))
	require.Error(t, err)
	_, err = DecodeRun([]byte("{"))
	require.Error(t, err)
	_, err = DecodeHistory([]byte("nope"))
	require.Error(t, err)
}

func TestHistoryCodecRoundTrip(t *testing.T) {
	history := []model.GenerationStatsRecord{
		{Generation: 1, ArchiveSize: 1, EvaluationMilliseconds: 12},
		{Generation: 2, ArchiveSize: 2, ReproductionMilliseconds: 3},
	}

	data, err := EncodeHistory(history)
	require.NoError(t, err)

	decoded, err := DecodeHistory(data)
	require.NoError(t, err)
	require.Equal(t, history, decoded)
}
