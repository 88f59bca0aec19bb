package main

import (
	"context"
	"math"

	"noveltyneat/internal/evo"
	"noveltyneat/internal/nn"
)

var xorCases = []struct {
	inputs []float64
	want   float64
}{
	{[]float64{0, 0}, 0},
	{[]float64{0, 1}, 1},
	{[]float64{1, 0}, 1},
	{[]float64{1, 1}, 0},
}

const xorSolvedTolerance = 0.4

// evaluateXOR scores an individual on the four XOR cases. Fitness is
// four minus the squared error; the behavior vector is the four raw
// outputs, which gives the novelty engine a four-dimensional space to
// spread the population in. An individual within tolerance on every
// case ends the run.
func evaluateXOR(_ context.Context, individual *evo.Individual) (evo.Progress, error) {
	network, err := nn.NewNetwork(individual.Genome)
	if err != nil {
		return evo.Progress{}, err
	}

	behavior := make([]float64, 0, len(xorCases))
	squaredError := 0.0
	solved := true
	for _, c := range xorCases {
		network.Reset()
		outputs, err := network.Activate(c.inputs)
		if err != nil {
			return evo.Progress{}, err
		}
		out := outputs[0]
		behavior = append(behavior, out)
		diff := out - c.want
		squaredError += diff * diff
		if math.Abs(diff) >= xorSolvedTolerance {
			solved = false
		}
	}

	progress := evo.NewProgress(float64(len(xorCases))-squaredError, behavior)
	if solved {
		progress = progress.Solved(individual.Clone())
	}
	return progress, nil
}
