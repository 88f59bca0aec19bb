package genotype

import (
	"fmt"

	"noveltyneat/internal/model"
)

// ToRecord converts the genome into its persistence record.
func (g *Genome) ToRecord() model.GenomeRecord {
	return model.GenomeRecord{
		Inputs:      nodeRecords(&g.Inputs),
		Hidden:      nodeRecords(&g.Hidden),
		Outputs:     nodeRecords(&g.Outputs),
		FeedForward: connectionRecords(&g.FeedForward),
		Recurrent:   connectionRecords(&g.Recurrent),
	}
}

// GenomeFromRecord reconstructs a genome from its persistence record,
// validating activation tags and gene-set uniqueness.
func GenomeFromRecord(record model.GenomeRecord) (*Genome, error) {
	genome := &Genome{}
	for _, spec := range []struct {
		set   *NodeSet
		nodes []model.NodeRecord
	}{
		{&genome.Inputs, record.Inputs},
		{&genome.Hidden, record.Hidden},
		{&genome.Outputs, record.Outputs},
	} {
		for _, node := range spec.nodes {
			activation, err := ParseActivation(node.Activation)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", node.ID, err)
			}
			if !spec.set.Insert(Node{ID: Id(node.ID), Activation: activation}) {
				return nil, fmt.Errorf("duplicate node id %d in record", node.ID)
			}
		}
	}

	for _, spec := range []struct {
		set         *ConnectionSet
		connections []model.ConnectionRecord
	}{
		{&genome.FeedForward, record.FeedForward},
		{&genome.Recurrent, record.Recurrent},
	} {
		for _, connection := range spec.connections {
			inserted := spec.set.Insert(Connection{
				Input:  Id(connection.Input),
				Weight: Weight(connection.Weight),
				Output: Id(connection.Output),
			})
			if !inserted {
				return nil, fmt.Errorf("duplicate connection %d->%d in record", connection.Input, connection.Output)
			}
		}
	}
	return genome, nil
}

func nodeRecords(set *NodeSet) []model.NodeRecord {
	out := make([]model.NodeRecord, 0, set.Len())
	for _, node := range set.Slice() {
		out = append(out, model.NodeRecord{ID: uint64(node.ID), Activation: string(node.Activation)})
	}
	return out
}

func connectionRecords(set *ConnectionSet) []model.ConnectionRecord {
	out := make([]model.ConnectionRecord, 0, set.Len())
	for _, connection := range set.Slice() {
		out = append(out, model.ConnectionRecord{
			Input:  uint64(connection.Input),
			Weight: float64(connection.Weight),
			Output: uint64(connection.Output),
		})
	}
	return out
}
