package evo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/model"
)

func TestIndividualRecordRoundTrip(t *testing.T) {
	original := &Individual{
		Genome:   testGenome(t, 3),
		Age:      2,
		Behavior: Behavior{0.25, -1.5},
		Fitness:  &Score{Raw: 4, Shifted: 1, Normalized: 0.5},
	}

	restored, err := IndividualFromRecord(original.ToRecord())
	require.NoError(t, err)

	require.Equal(t, original.Age, restored.Age)
	require.Equal(t, original.Behavior, restored.Behavior)
	require.Equal(t, original.Fitness, restored.Fitness)
	require.Nil(t, restored.Novelty)
	require.Equal(t, original.Genome.Len(), restored.Genome.Len())
	require.Equal(t, original.Genome.Inputs.Slice(), restored.Genome.Inputs.Slice())
}

func TestPopulationCheckpointRoundTrip(t *testing.T) {
	cfg := testConfig()
	population, err := NewPopulation(cfg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := population.NextGeneration(testProgress(population))
		require.NoError(t, err)
	}

	record := population.ToRecord("checkpoint-a")
	require.Equal(t, "checkpoint-a", record.ID)
	require.Equal(t, 3, record.Generation)
	require.Len(t, record.Individuals, cfg.PopulationSize)
	require.Len(t, record.Archive, 3)

	restored, err := PopulationFromRecord(cfg, record)
	require.NoError(t, err)

	require.Equal(t, population.Generation(), restored.Generation())
	require.Equal(t, population.ArchiveSize(), restored.ArchiveSize())
	require.Len(t, restored.Individuals(), cfg.PopulationSize)
	for i, individual := range population.Individuals() {
		require.Equal(t, individual.Genome.Len(), restored.Individuals()[i].Genome.Len())
		require.Equal(t, individual.Age, restored.Individuals()[i].Age)
	}

	// restored generator must not reissue ids already in use
	require.Equal(t, population.ids.NextID(), restored.ids.NextID())
	require.Equal(t, population.ids.SplitCache(), restored.ids.SplitCache())

	// the resumed population keeps evolving
	_, err = restored.NextGeneration(testProgress(restored))
	require.NoError(t, err)
	require.Len(t, restored.Individuals(), cfg.PopulationSize)
}

func TestPopulationFromRecordRejectsEmptyCheckpoint(t *testing.T) {
	_, err := PopulationFromRecord(testConfig(), model.PopulationRecord{})
	require.Error(t, err)
}
