package evo

import (
	"math"
	"math/rand"

	"noveltyneat/internal/genotype"
)

const scoreEpsilon = 1e-12

// Behavior is the evaluator-observed behavior vector of an individual,
// the novelty engine's distance space.
type Behavior []float64

// Clone copies the behavior vector.
func (b Behavior) Clone() Behavior {
	if b == nil {
		return nil
	}
	return append(Behavior(nil), b...)
}

// Individual wraps a genome with its evaluation state: generations
// survived, the observed behavior and the two scored signals. Behavior,
// fitness and novelty stay nil until an evaluator supplied them.
type Individual struct {
	Genome   *genotype.Genome
	Age      int
	Behavior Behavior
	Fitness  *Score
	Novelty  *Score
}

// NewIndividual wraps a fresh genome with cleared evaluation state.
func NewIndividual(genome *genotype.Genome) *Individual {
	return &Individual{Genome: genome}
}

// Clone deep-copies the individual.
func (ind *Individual) Clone() *Individual {
	clone := &Individual{
		Genome:   ind.Genome.Clone(),
		Age:      ind.Age,
		Behavior: ind.Behavior.Clone(),
	}
	if ind.Fitness != nil {
		fitness := *ind.Fitness
		clone.Fitness = &fitness
	}
	if ind.Novelty != nil {
		novelty := *ind.Novelty
		clone.Novelty = &novelty
	}
	return clone
}

// Score blends normalized fitness and normalized novelty, weighting the
// dominant signal more heavily while still crediting the weaker one.
// Absent signals count as zero; both zero yields zero.
func (ind *Individual) Score() float64 {
	fitness := 0.0
	if ind.Fitness != nil {
		fitness = ind.Fitness.Normalized
	}
	novelty := 0.0
	if ind.Novelty != nil {
		novelty = ind.Novelty.Normalized
	}

	if fitness == 0.0 && novelty == 0.0 {
		return 0.0
	}

	min, max := fitness, novelty
	if min > max {
		min, max = max, min
	}

	// the closer the weaker signal is to the dominant one, the more it
	// contributes; ratio peaks at 1/2 for equal signals
	ratio := min / max / 2.0
	return min*ratio + max*(1.0-ratio)
}

// IsFitterThan ranks by score, breaking near-ties in favor of the genome
// with fewer connection genes.
func (ind *Individual) IsFitterThan(other *Individual) bool {
	scoreSelf := ind.Score()
	scoreOther := other.Score()

	if scoreSelf > scoreOther {
		return true
	}
	return math.Abs(scoreSelf-scoreOther) < scoreEpsilon && ind.Genome.Len() < other.Genome.Len()
}

// Crossover mates two individuals, letting the fitter genome drive gene
// inheritance. The child starts at age zero with cleared evaluation
// state.
func (ind *Individual) Crossover(other *Individual, rng *rand.Rand) *Individual {
	fitter, weaker := ind, other
	if !ind.IsFitterThan(other) {
		fitter, weaker = other, ind
	}
	return NewIndividual(fitter.Genome.CrossIn(weaker.Genome, rng))
}
