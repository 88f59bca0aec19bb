package nn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/genotype"
)

// two inputs wired straight to one linear output
func linearGenome(t *testing.T, weightA, weightB float64) *genotype.Genome {
	t.Helper()
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 2, 1, genotype.ActivationLinear)
	inputs := genome.Inputs.Slice()
	output := genome.Outputs.Slice()[0]
	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[0].ID, Weight: genotype.Weight(weightA), Output: output.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: inputs[1].ID, Weight: genotype.Weight(weightB), Output: output.ID})
	return genome
}

func TestNetworkComputesWeightedSum(t *testing.T) {
	network, err := NewNetwork(linearGenome(t, 0.5, -1.0))
	require.NoError(t, err)

	require.Equal(t, 2, network.InputDimension())
	require.Equal(t, 1, network.OutputDimension())

	out, err := network.Activate([]float64{2.0, 3.0})
	require.NoError(t, err)
	require.InDelta(t, -2.0, out[0], 1e-12)
}

func TestNetworkRoutesThroughHiddenNode(t *testing.T) {
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 1, 1, genotype.ActivationLinear)
	input := genome.Inputs.Slice()[0]
	output := genome.Outputs.Slice()[0]
	hidden := genotype.Node{ID: gen.Next(), Activation: genotype.ActivationRelu}
	genome.Hidden.MustInsert(hidden)
	genome.FeedForward.MustInsert(genotype.Connection{Input: input.ID, Weight: 1.0, Output: hidden.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: hidden.ID, Weight: 2.0, Output: output.ID})

	network, err := NewNetwork(genome)
	require.NoError(t, err)

	out, err := network.Activate([]float64{3.0})
	require.NoError(t, err)
	require.InDelta(t, 6.0, out[0], 1e-12)

	// relu gates the negative path
	out, err = network.Activate([]float64{-3.0})
	require.NoError(t, err)
	require.InDelta(t, 0.0, out[0], 1e-12)
}

func TestNetworkRejectsWrongInputDimension(t *testing.T) {
	network, err := NewNetwork(linearGenome(t, 1.0, 1.0))
	require.NoError(t, err)

	_, err = network.Activate([]float64{1.0})
	require.Error(t, err)
}

func TestUnrollAddsOnePairPerRecurrentConnection(t *testing.T) {
	genome := linearGenome(t, 1.0, 1.0)
	output := genome.Outputs.Slice()[0]
	input := genome.Inputs.Slice()[0]
	genome.Recurrent.MustInsert(genotype.Connection{Input: output.ID, Weight: 0.5, Output: input.ID})

	unrolled, pairs := Unroll(genome)

	require.Len(t, pairs, 1)
	require.Equal(t, genome.Inputs.Len()+1, unrolled.Inputs.Len())
	require.Equal(t, genome.Outputs.Len()+1, unrolled.Outputs.Len())
	require.Equal(t, genome.FeedForward.Len()+2, unrolled.FeedForward.Len())
	require.Equal(t, 0, unrolled.Recurrent.Len())

	// the source genome is untouched
	require.Equal(t, 1, genome.Recurrent.Len())
	require.Equal(t, 2, genome.Inputs.Len())
}

func TestRecurrentSignalArrivesOneStepLate(t *testing.T) {
	// one input, one linear output, self-recurrent output with weight 1:
	// output(t) = input(t) + output(t-1)
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 1, 1, genotype.ActivationLinear)
	input := genome.Inputs.Slice()[0]
	output := genome.Outputs.Slice()[0]
	genome.FeedForward.MustInsert(genotype.Connection{Input: input.ID, Weight: 1.0, Output: output.ID})
	genome.Recurrent.MustInsert(genotype.Connection{Input: output.ID, Weight: 1.0, Output: output.ID})

	network, err := NewNetwork(genome)
	require.NoError(t, err)

	want := []float64{1.0, 2.0, 3.0}
	for _, expected := range want {
		out, err := network.Activate([]float64{1.0})
		require.NoError(t, err)
		require.InDelta(t, expected, out[0], 1e-12)
	}

	network.Reset()
	out, err := network.Activate([]float64{1.0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, out[0], 1e-12)
}

func TestNetworkRejectsCyclicFeedForwardGraph(t *testing.T) {
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 1, 1, genotype.ActivationLinear)
	a := genotype.Node{ID: gen.Next(), Activation: genotype.ActivationLinear}
	b := genotype.Node{ID: gen.Next(), Activation: genotype.ActivationLinear}
	genome.Hidden.MustInsert(a)
	genome.Hidden.MustInsert(b)
	genome.FeedForward.MustInsert(genotype.Connection{Input: a.ID, Weight: 1.0, Output: b.ID})
	genome.FeedForward.MustInsert(genotype.Connection{Input: b.ID, Weight: 1.0, Output: a.ID})

	_, err := NewNetwork(genome)
	require.Error(t, err)
}

func TestNetworkRejectsUnknownActivation(t *testing.T) {
	gen := genotype.NewIdGenerator()
	genome := genotype.NewGenome(gen, 1, 1, genotype.Activation("mystery"))

	_, err := NewNetwork(genome)
	require.Error(t, err)
}
