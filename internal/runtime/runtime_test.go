package runtime

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/evo"
	"noveltyneat/internal/genotype"
)

func testPopulation(t *testing.T, size int) *evo.Population {
	t.Helper()
	population, err := evo.NewPopulation(evo.Config{
		Seed:                    7,
		PopulationSize:          size,
		SurvivalRate:            0.5,
		InputDimension:          2,
		OutputDimension:         1,
		NoveltyNearestNeighbors: 3,
		OutputActivation:        genotype.ActivationSigmoid,
		Mutation: genotype.MutationConfig{
			NewConnectionChance:      0.1,
			NewNodeChance:            0.05,
			WeightPerturbationStdDev: 1.0,
			HiddenActivations:        []genotype.Activation{genotype.ActivationTanh},
		},
	})
	require.NoError(t, err)
	return population
}

// reports fitness proportional to genome complexity, behavior from it too
func complexityEvaluator() Evaluator {
	return EvaluatorFunc(func(_ context.Context, individual *evo.Individual) (evo.Progress, error) {
		size := float64(individual.Genome.Len())
		return evo.NewProgress(size, []float64{size, size * 0.5}), nil
	})
}

func TestNewRuntimeValidatesArguments(t *testing.T) {
	population := testPopulation(t, 10)

	_, err := NewRuntime(nil, complexityEvaluator(), 1)
	require.Error(t, err)
	_, err = NewRuntime(population, nil, 1)
	require.Error(t, err)
	_, err = NewRuntime(population, complexityEvaluator(), 0)
	require.Error(t, err)
}

func TestStepAdvancesOneGeneration(t *testing.T) {
	population := testPopulation(t, 10)
	runtime, err := NewRuntime(population, complexityEvaluator(), 4)
	require.NoError(t, err)

	step, err := runtime.Step(context.Background())
	require.NoError(t, err)

	require.Nil(t, step.Solution)
	require.Equal(t, 1, step.Statistics.Generation)
	require.Equal(t, 1, population.Generation())
	require.Len(t, population.Individuals(), 10)
	require.GreaterOrEqual(t, step.Statistics.EvaluationDuration.Nanoseconds(), int64(0))
}

func TestStepEvaluatesEveryIndividualExactlyOnce(t *testing.T) {
	population := testPopulation(t, 25)

	var mu sync.Mutex
	seen := make(map[*evo.Individual]int)
	evaluator := EvaluatorFunc(func(_ context.Context, individual *evo.Individual) (evo.Progress, error) {
		mu.Lock()
		seen[individual]++
		mu.Unlock()
		return evo.NoveltyProgress([]float64{float64(individual.Genome.Len())}), nil
	})

	runtime, err := NewRuntime(population, evaluator, 8)
	require.NoError(t, err)

	_, err = runtime.Step(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 25)
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
}

func TestStepShortCircuitsOnSolution(t *testing.T) {
	population := testPopulation(t, 10)
	evaluator := EvaluatorFunc(func(_ context.Context, individual *evo.Individual) (evo.Progress, error) {
		progress := evo.NewProgress(1.0, []float64{1.0})
		return progress.Solved(individual.Clone()), nil
	})

	runtime, err := NewRuntime(population, evaluator, 2)
	require.NoError(t, err)

	step, err := runtime.Step(context.Background())
	require.NoError(t, err)

	require.NotNil(t, step.Solution)
	// no transition happened
	require.Equal(t, 0, population.Generation())
}

func TestStepPropagatesEvaluatorErrors(t *testing.T) {
	population := testPopulation(t, 10)
	evaluator := EvaluatorFunc(func(_ context.Context, _ *evo.Individual) (evo.Progress, error) {
		return evo.Progress{}, fmt.Errorf("scoring backend down")
	})

	runtime, err := NewRuntime(population, evaluator, 2)
	require.NoError(t, err)

	_, err = runtime.Step(context.Background())
	require.ErrorContains(t, err, "scoring backend down")
}

func TestRunStopsAtGenerationBudget(t *testing.T) {
	population := testPopulation(t, 10)
	runtime, err := NewRuntime(population, complexityEvaluator(), 4)
	require.NoError(t, err)

	result, err := runtime.Run(context.Background(), 5)
	require.NoError(t, err)

	require.False(t, result.Solved())
	require.Len(t, result.History, 5)
	require.Equal(t, 5, population.Generation())
}

func TestRunStopsOnSolution(t *testing.T) {
	population := testPopulation(t, 10)
	generation := 0
	var mu sync.Mutex
	evaluator := EvaluatorFunc(func(_ context.Context, individual *evo.Individual) (evo.Progress, error) {
		mu.Lock()
		solved := generation >= 2
		mu.Unlock()
		progress := evo.NewProgress(1.0, []float64{float64(individual.Genome.Len())})
		if solved {
			return progress.Solved(individual.Clone()), nil
		}
		return progress, nil
	})

	runtime, err := NewRuntime(population, evaluator, 2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := runtime.Step(context.Background())
		require.NoError(t, err)
		mu.Lock()
		generation++
		mu.Unlock()
	}

	result, err := runtime.Run(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, result.Solved())
	require.Empty(t, result.History)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	population := testPopulation(t, 10)
	runtime, err := NewRuntime(population, complexityEvaluator(), 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runtime.Run(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
}
