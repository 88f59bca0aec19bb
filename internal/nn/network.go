package nn

import (
	"fmt"
	"sort"

	"noveltyneat/internal/genotype"
)

type incomingEdge struct {
	source genotype.Id
	weight float64
}

type computeStep struct {
	node     genotype.Id
	incoming []incomingEdge
	fn       ActivationFunc
}

// Network is a genome compiled for evaluation. Feed-forward connections
// are executed in one topological pass; recurrent connections are
// unrolled into auxiliary input/output pairs whose values the network
// carries between activations, so recurrent signals arrive with a
// one-step delay. Networks are stateful and not safe for concurrent use.
type Network struct {
	inputs  []genotype.Id
	outputs []genotype.Id
	steps   []computeStep
	pairs   []CarryPair
	carried map[genotype.Id]float64
}

// NewNetwork compiles the genome. The genome itself is not retained.
func NewNetwork(g *genotype.Genome) (*Network, error) {
	realInputs := g.Inputs.Len()
	realOutputs := g.Outputs.Len()

	unrolled, pairs := Unroll(g)

	network := &Network{
		pairs:   pairs,
		carried: make(map[genotype.Id]float64, len(pairs)),
	}
	for _, pair := range pairs {
		network.carried[pair.AuxiliaryInput] = 0.0
	}
	for _, input := range unrolled.Inputs.Slice()[:realInputs] {
		network.inputs = append(network.inputs, input.ID)
	}
	for _, output := range unrolled.Outputs.Slice()[:realOutputs] {
		network.outputs = append(network.outputs, output.ID)
	}

	steps, err := compile(unrolled)
	if err != nil {
		return nil, err
	}
	network.steps = steps
	return network, nil
}

// compile orders all non-input nodes topologically over the feed-forward
// graph and resolves their activation functions. A cycle here means the
// genome broke the acyclicity invariant.
func compile(g *genotype.Genome) ([]computeStep, error) {
	incoming := make(map[genotype.Id][]incomingEdge)
	pending := make(map[genotype.Id]int)
	outgoing := make(map[genotype.Id][]genotype.Id)
	for _, connection := range g.FeedForward.Slice() {
		incoming[connection.Output] = append(incoming[connection.Output], incomingEdge{
			source: connection.Input,
			weight: float64(connection.Weight),
		})
		pending[connection.Output]++
		outgoing[connection.Input] = append(outgoing[connection.Input], connection.Output)
	}

	targets := make([]genotype.Node, 0, g.Hidden.Len()+g.Outputs.Len())
	targets = append(targets, g.Hidden.Slice()...)
	targets = append(targets, g.Outputs.Slice()...)

	ready := make([]genotype.Id, 0, len(targets))
	for _, input := range g.Inputs.Slice() {
		ready = append(ready, input.ID)
	}
	for _, node := range targets {
		if pending[node.ID] == 0 {
			ready = append(ready, node.ID)
		}
	}

	order := make(map[genotype.Id]int, len(targets))
	position := 0
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		order[current] = position
		position++
		for _, next := range outgoing[current] {
			pending[next]--
			if pending[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	steps := make([]computeStep, 0, len(targets))
	for _, node := range targets {
		if _, ordered := order[node.ID]; !ordered {
			return nil, fmt.Errorf("feed-forward graph contains a cycle through node %d", node.ID)
		}
		fn, err := Func(node.Activation)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node.ID, err)
		}
		steps = append(steps, computeStep{node: node.ID, incoming: incoming[node.ID], fn: fn})
	}
	sort.Slice(steps, func(i, j int) bool {
		return order[steps[i].node] < order[steps[j].node]
	})
	return steps, nil
}

// InputDimension reports the number of values Activate expects.
func (n *Network) InputDimension() int {
	return len(n.inputs)
}

// OutputDimension reports the number of values Activate returns.
func (n *Network) OutputDimension() int {
	return len(n.outputs)
}

// Activate runs one forward pass. Recurrent carry values captured during
// this pass feed the next one.
func (n *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(n.inputs) {
		return nil, fmt.Errorf("input dimension mismatch: got=%d want=%d", len(inputs), len(n.inputs))
	}

	values := make(map[genotype.Id]float64, len(n.inputs)+len(n.steps))
	for i, id := range n.inputs {
		values[id] = inputs[i]
	}
	for _, pair := range n.pairs {
		values[pair.AuxiliaryInput] = n.carried[pair.AuxiliaryInput]
	}

	for _, step := range n.steps {
		sum := 0.0
		for _, edge := range step.incoming {
			sum += values[edge.source] * edge.weight
		}
		values[step.node] = step.fn(sum)
	}

	for _, pair := range n.pairs {
		n.carried[pair.AuxiliaryInput] = values[pair.AuxiliaryOutput]
	}

	outputs := make([]float64, len(n.outputs))
	for i, id := range n.outputs {
		outputs[i] = values[id]
	}
	return outputs, nil
}

// Reset clears the recurrent carry state.
func (n *Network) Reset() {
	for _, pair := range n.pairs {
		n.carried[pair.AuxiliaryInput] = 0.0
	}
}
