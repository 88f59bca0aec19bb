package evo

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// rawNovelties scores every behavior as the mean Euclidean distance to
// its k nearest neighbors among all other behaviors. With a single
// behavior there are no neighbors and its novelty is zero.
func rawNovelties(behaviors []Behavior, k int) []float64 {
	novelties := make([]float64, len(behaviors))
	if len(behaviors) < 2 || k <= 0 {
		return novelties
	}

	for i, behavior := range behaviors {
		distances := make([]float64, 0, len(behaviors)-1)
		for j, other := range behaviors {
			if i == j {
				continue
			}
			distances = append(distances, floats.Distance(behavior, other, 2))
		}
		sort.Float64s(distances)
		if len(distances) > k {
			distances = distances[:k]
		}
		novelties[i] = stat.Mean(distances, nil)
	}
	return novelties
}
