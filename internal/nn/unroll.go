package nn

import (
	"math"

	"noveltyneat/internal/genotype"
)

// CarryPair names one unrolled recurrent connection: the auxiliary output
// that captures the source node's value this step and the auxiliary input
// that feeds it back next step. Pairs are ordered like the recurrent gene
// set they came from.
type CarryPair struct {
	AuxiliaryInput  genotype.Id
	AuxiliaryOutput genotype.Id
}

// Unroll rewrites a genome with recurrent connections into a strictly
// feed-forward one. Every recurrent edge (a, w, b) is replaced by a fresh
// auxiliary input wired into b with weight w and a fresh auxiliary output
// wired from a with weight one; carrying each auxiliary output back into
// its paired input between activations restores the one-step-delay
// semantics. Auxiliary ids count down from the top of the id space so
// they can never collide with generator-issued ids.
func Unroll(g *genotype.Genome) (*genotype.Genome, []CarryPair) {
	unrolled := g.Clone()
	recurrent := unrolled.Recurrent.Slice()
	if len(recurrent) == 0 {
		return unrolled, nil
	}

	nextAux := genotype.Id(math.MaxUint64)
	pairs := make([]CarryPair, 0, len(recurrent))
	for _, connection := range recurrent {
		auxIn := nextAux
		nextAux--
		auxOut := nextAux
		nextAux--

		unrolled.Inputs.MustInsert(genotype.Node{ID: auxIn, Activation: genotype.ActivationLinear})
		unrolled.Outputs.MustInsert(genotype.Node{ID: auxOut, Activation: genotype.ActivationLinear})
		unrolled.FeedForward.MustInsert(genotype.Connection{Input: auxIn, Weight: connection.Weight, Output: connection.Output})
		unrolled.FeedForward.MustInsert(genotype.Connection{Input: connection.Input, Weight: 1.0, Output: auxOut})

		pairs = append(pairs, CarryPair{AuxiliaryInput: auxIn, AuxiliaryOutput: auxOut})
	}
	unrolled.Recurrent = genotype.ConnectionSet{}
	return unrolled, pairs
}
