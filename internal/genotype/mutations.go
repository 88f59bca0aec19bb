package genotype

import (
	"errors"
	"math/rand"
)

// ErrNoConnectionPossible signals that AddConnection found no legal new
// edge. This is an expected outcome on densely connected genomes and is
// treated as a no-op by the mutation driver.
var ErrNoConnectionPossible = errors.New("no connection possible")

// MutationConfig carries the per-operator rates and the hidden-node
// activation candidates.
type MutationConfig struct {
	NewConnectionChance         float64
	NewNodeChance               float64
	ConnectionIsRecurrentChance float64
	ChangeActivationChance      float64
	WeightPerturbationStdDev    float64
	HiddenActivations           []Activation
}

// Mutate advances the genome one generation: weights are always perturbed,
// the structural operators each fire with their configured chance.
func (g *Genome) Mutate(rng *rand.Rand, gen *IdGenerator, cfg MutationConfig) {
	g.ChangeWeights(rng, cfg.WeightPerturbationStdDev)

	if gamble(rng, cfg.NewConnectionChance) {
		// failing to find a legal edge is fine, the attempt is simply dropped
		_ = g.AddConnection(rng, cfg)
	}

	if gamble(rng, cfg.NewNodeChance) {
		g.AddNode(rng, gen, cfg)
	}

	if gamble(rng, cfg.ChangeActivationChance) {
		g.AlterActivation(rng, cfg)
	}
}

// ChangeWeights perturbs every connection weight of both kinds with
// gaussian noise, visiting genes in a randomized order.
func (g *Genome) ChangeWeights(rng *rand.Rand, stdDev float64) {
	for _, connection := range g.FeedForward.IterateWithRandomOffset(rng) {
		connection.Weight = connection.Weight.Perturbed(rng, stdDev)
		g.FeedForward.Replace(connection)
	}
	for _, connection := range g.Recurrent.IterateWithRandomOffset(rng) {
		connection.Weight = connection.Weight.Perturbed(rng, stdDev)
		g.Recurrent.Replace(connection)
	}
}

// AddConnection inserts one new connection. A weighted coin decides
// between a recurrent and a feed-forward edge. Candidate start nodes are
// inputs and hidden, visited once each from a random rotation offset;
// candidate end nodes are hidden and outputs in their natural order. The
// first pair that is not a self-loop, not already connected in the target
// set and (for feed-forward edges) does not close a cycle is inserted.
func (g *Genome) AddConnection(rng *rand.Rand, cfg MutationConfig) error {
	isRecurrent := gamble(rng, cfg.ConnectionIsRecurrentChance)

	startNodes := append(g.Inputs.Slice(), g.Hidden.Slice()...)
	endNodes := append(g.Hidden.Slice(), g.Outputs.Slice()...)
	if len(startNodes) == 0 || len(endNodes) == 0 {
		return ErrNoConnectionPossible
	}

	offset := rng.Intn(len(startNodes))
	for i := range startNodes {
		start := startNodes[(offset+i)%len(startNodes)]
		for _, end := range endNodes {
			if end.ID == start.ID {
				continue
			}
			if g.areConnected(start.ID, end.ID, isRecurrent) {
				continue
			}
			if !isRecurrent && g.WouldFormCycle(start.ID, end.ID) {
				continue
			}

			connection := Connection{
				Input:  start.ID,
				Weight: Perturbation(rng, cfg.WeightPerturbationStdDev),
				Output: end.ID,
			}
			if isRecurrent {
				g.Recurrent.MustInsert(connection)
			} else {
				g.FeedForward.MustInsert(connection)
			}
			return nil
		}
	}
	return ErrNoConnectionPossible
}

// AddNode splits a random feed-forward connection (a, w, b) by a new
// hidden node n: inserts (a, 1.0, n) and (n, w, b) and zeroes the original
// weight, keeping the old gene as a disabled historical marker. The new
// node id comes from the split cache so parallel lineages splitting the
// same connection agree on it; cached ids already used by this genome's
// hidden set are skipped.
func (g *Genome) AddNode(rng *rand.Rand, gen *IdGenerator, cfg MutationConfig) {
	split, ok := g.FeedForward.Random(rng)
	if !ok {
		return
	}

	id := gen.SplitID(split.Key(), func(candidate Id) bool {
		_, used := g.Hidden.Get(candidate)
		return used
	})
	node := Node{
		ID:         id,
		Activation: cfg.HiddenActivations[rng.Intn(len(cfg.HiddenActivations))],
	}

	g.FeedForward.MustInsert(Connection{Input: split.Input, Weight: 1.0, Output: node.ID})
	g.FeedForward.MustInsert(Connection{Input: node.ID, Weight: split.Weight, Output: split.Output})
	g.Hidden.MustInsert(node)

	split.Weight = 0.0
	g.FeedForward.Replace(split)
}

// AlterActivation reassigns a random hidden node's activation, drawn
// uniformly from the candidates excluding its current one. With no
// alternative candidate the node is left unchanged.
func (g *Genome) AlterActivation(rng *rand.Rand, cfg MutationConfig) {
	node, ok := g.Hidden.Random(rng)
	if !ok {
		return
	}

	alternatives := make([]Activation, 0, len(cfg.HiddenActivations))
	for _, candidate := range cfg.HiddenActivations {
		if candidate != node.Activation {
			alternatives = append(alternatives, candidate)
		}
	}
	if len(alternatives) == 0 {
		return
	}

	node.Activation = alternatives[rng.Intn(len(alternatives))]
	g.Hidden.Replace(node)
}

func gamble(rng *rand.Rand, chance float64) bool {
	return rng.Float64() < chance
}
