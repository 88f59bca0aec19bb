package genotype

import "math/rand"

// NodeSet and ConnectionSet are the two gene-set shapes a genome is built
// from.
type (
	NodeSet       = Set[Id, Node]
	ConnectionSet = Set[ConnectionKey, Connection]
)

// Genome is a variable-topology network encoding: three disjoint node sets
// and two disjoint connection sets. The feed-forward set is kept acyclic at
// all times; the recurrent set may form cycles and is evaluated with a
// one-step delay by the network adapter.
type Genome struct {
	Inputs      NodeSet
	Hidden      NodeSet
	Outputs     NodeSet
	FeedForward ConnectionSet
	Recurrent   ConnectionSet
}

// NewGenome allocates input and output nodes only; Init adds the first
// connections. Input nodes use the fixed linear activation, outputs the
// configured one. Input and output counts are fixed per run, so every
// genome in a population shares these ids.
func NewGenome(gen *IdGenerator, inputs, outputs int, outputActivation Activation) *Genome {
	genome := &Genome{}
	for i := 0; i < inputs; i++ {
		genome.Inputs.MustInsert(Node{ID: gen.Next(), Activation: ActivationLinear})
	}
	for i := 0; i < outputs; i++ {
		genome.Outputs.MustInsert(Node{ID: gen.Next(), Activation: outputActivation})
	}
	return genome
}

// Init connects a random non-empty subset of inputs to every output with
// randomly initialized weights.
func (g *Genome) Init(rng *rand.Rand) {
	count := int(float64(g.Inputs.Len())*rng.Float64()) + 1
	if count > g.Inputs.Len() {
		count = g.Inputs.Len()
	}
	for _, input := range g.Inputs.IterateWithRandomOffset(rng)[:count] {
		for _, output := range g.Outputs.Slice() {
			g.FeedForward.MustInsert(Connection{
				Input:  input.ID,
				Weight: RandomWeight(rng),
				Output: output.ID,
			})
		}
	}
}

// Nodes returns every node of the genome: inputs, hidden, outputs.
func (g *Genome) Nodes() []Node {
	out := make([]Node, 0, g.Inputs.Len()+g.Hidden.Len()+g.Outputs.Len())
	out = append(out, g.Inputs.Slice()...)
	out = append(out, g.Hidden.Slice()...)
	out = append(out, g.Outputs.Slice()...)
	return out
}

// Len counts connection genes of both kinds; it is the complexity measure
// used for the parsimony tiebreak.
func (g *Genome) Len() int {
	return g.FeedForward.Len() + g.Recurrent.Len()
}

func (g *Genome) IsEmpty() bool {
	return g.Len() == 0
}

// Clone deep-copies the genome.
func (g *Genome) Clone() *Genome {
	return &Genome{
		Inputs:      g.Inputs.Clone(),
		Hidden:      g.Hidden.Clone(),
		Outputs:     g.Outputs.Clone(),
		FeedForward: g.FeedForward.Clone(),
		Recurrent:   g.Recurrent.Clone(),
	}
}

// CrossIn produces a child genome with the receiver as the fitter parent.
// The evolving sets are combined gene-wise; inputs and outputs are copied
// from the receiver, both parents share them by construction.
func (g *Genome) CrossIn(other *Genome, rng *rand.Rand) *Genome {
	return &Genome{
		Inputs:      g.Inputs.Clone(),
		Outputs:     g.Outputs.Clone(),
		Hidden:      g.Hidden.CrossIn(&other.Hidden, rng),
		FeedForward: g.FeedForward.CrossIn(&other.FeedForward, rng),
		Recurrent:   g.Recurrent.CrossIn(&other.Recurrent, rng),
	}
}

// areConnected tests whether the given endpoint pair is already present in
// the requested connection set, ignoring weight.
func (g *Genome) areConnected(start, end Id, recurrent bool) bool {
	probe := Connection{Input: start, Output: end}
	if recurrent {
		return g.Recurrent.Contains(probe)
	}
	return g.FeedForward.Contains(probe)
}

// WouldFormCycle reports whether inserting the feed-forward edge
// start->end would close a cycle. It walks forward from end along existing
// feed-forward edges with a visited set; reaching start means the new edge
// would complete a loop. Precondition: the feed-forward subgraph is
// acyclic.
func (g *Genome) WouldFormCycle(start, end Id) bool {
	adjacency := make(map[Id][]Id, g.FeedForward.Len())
	for _, connection := range g.FeedForward.Slice() {
		adjacency[connection.Input] = append(adjacency[connection.Input], connection.Output)
	}

	visited := map[Id]bool{end: true}
	frontier := []Id{end}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		if current == start {
			return true
		}
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	return false
}
