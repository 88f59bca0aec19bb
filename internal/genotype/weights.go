package genotype

import "math/rand"

// Weight is the mutable payload of a connection gene.
type Weight float64

// RandomWeight draws a fresh weight uniformly from [-1, 1].
func RandomWeight(rng *rand.Rand) Weight {
	return Weight(rng.Float64()*2 - 1)
}

// Perturbation samples gaussian noise with mean 0 and the given standard
// deviation. It seeds the weight of a newly added connection and shifts
// existing weights during weight mutation.
func Perturbation(rng *rand.Rand, stdDev float64) Weight {
	return Weight(rng.NormFloat64() * stdDev)
}

// Perturbed returns the weight shifted by gaussian noise.
func (w Weight) Perturbed(rng *rand.Rand, stdDev float64) Weight {
	return w + Perturbation(rng, stdDev)
}
