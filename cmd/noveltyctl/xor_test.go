package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/evo"
	"noveltyneat/internal/genotype"
)

// hand-built exact XOR solver: step(x1-x2) + step(x2-x1)
func xorGenome(t *testing.T) *genotype.Genome {
	t.Helper()
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 2, 1, genotype.ActivationLinear)
	inputs := genome.Inputs.Slice()
	output := genome.Outputs.Slice()[0]

	h1 := genotype.Node{ID: gen.Next(), Activation: genotype.ActivationStep}
	h2 := genotype.Node{ID: gen.Next(), Activation: genotype.ActivationStep}
	genome.Hidden.MustInsert(h1)
	genome.Hidden.MustInsert(h2)

	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[0].ID, Weight: 1.0, Output: h1.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[1].ID, Weight: -1.0, Output: h1.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[0].ID, Weight: -1.0, Output: h2.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[1].ID, Weight: 1.0, Output: h2.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: h1.ID, Weight: 1.0, Output: output.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: h2.ID, Weight: 1.0, Output: output.ID})
	return genome
}

func TestEvaluateXORRecognizesSolver(t *testing.T) {
	individual := evo.NewIndividual(xorGenome(t))

	progress, err := evaluateXOR(context.Background(), individual)
	require.NoError(t, err)

	fitness, ok := progress.RawFitness()
	require.True(t, ok)
	require.InDelta(t, 4.0, fitness, 1e-9)
	require.Len(t, progress.Behavior(), 4)
	require.NotNil(t, progress.Solution())
}

func TestEvaluateXORScoresPartialSolver(t *testing.T) {
	// a single straight-through connection gets half the cases right
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 2, 1, genotype.ActivationLinear)
	genome.FeedForward.MustInsert(genotype.Connection{
		Input:  genome.Inputs.Slice()[0].ID,
		Weight: 1.0,
		Output: genome.Outputs.Slice()[0].ID,
	})
	individual := evo.NewIndividual(genome)

	progress, err := evaluateXOR(context.Background(), individual)
	require.NoError(t, err)

	fitness, ok := progress.RawFitness()
	require.True(t, ok)
	require.Less(t, fitness, 4.0)
	require.Nil(t, progress.Solution())
}
