package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"noveltyneat/internal/evo"
	"noveltyneat/internal/genotype"
)

// Parameters is the YAML-backed run configuration. Zero fields are filled
// in from Default by Load, so partial files only state what they change.
type Parameters struct {
	Seed        int64             `yaml:"seed"`
	Setup       SetupParameters   `yaml:"setup"`
	Activations ActivationChoices `yaml:"activations"`
	Mutation    MutationRates     `yaml:"mutation"`
}

type SetupParameters struct {
	PopulationSize          int     `yaml:"population_size"`
	SurvivalRate            float64 `yaml:"survival_rate"`
	InputDimension          int     `yaml:"input_dimension"`
	OutputDimension         int     `yaml:"output_dimension"`
	NoveltyNearestNeighbors int     `yaml:"novelty_nearest_neighbors"`
}

type ActivationChoices struct {
	OutputNodes string   `yaml:"output_nodes"`
	HiddenNodes []string `yaml:"hidden_nodes"`
}

type MutationRates struct {
	NewConnectionChance         float64 `yaml:"new_connection_chance"`
	NewNodeChance               float64 `yaml:"new_node_chance"`
	ConnectionIsRecurrentChance float64 `yaml:"connection_is_recurrent_chance"`
	ChangeActivationChance      float64 `yaml:"change_activation_chance"`
	WeightPerturbationStdDev    float64 `yaml:"weight_perturbation_std_dev"`
}

// Default returns the reference parameter set: a 100-individual
// population with moderate structural mutation rates and the full hidden
// activation palette.
func Default() Parameters {
	return Parameters{
		Seed: 42,
		Setup: SetupParameters{
			PopulationSize:          100,
			SurvivalRate:            0.2,
			InputDimension:          1,
			OutputDimension:         1,
			NoveltyNearestNeighbors: 15,
		},
		Activations: ActivationChoices{
			OutputNodes: string(genotype.ActivationTanh),
			HiddenNodes: []string{
				string(genotype.ActivationSigmoid),
				string(genotype.ActivationTanh),
				string(genotype.ActivationGaussian),
				string(genotype.ActivationStep),
				string(genotype.ActivationSine),
				string(genotype.ActivationCosine),
				string(genotype.ActivationInverse),
				string(genotype.ActivationAbsolute),
				string(genotype.ActivationRelu),
				string(genotype.ActivationSquared),
			},
		},
		Mutation: MutationRates{
			NewConnectionChance:         0.1,
			NewNodeChance:               0.05,
			ConnectionIsRecurrentChance: 0.3,
			ChangeActivationChance:      0.05,
			WeightPerturbationStdDev:    1.0,
		},
	}
}

// Load reads a YAML parameter file and overlays it on the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Parameters, error) {
	params := Default()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read parameters: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Parameters{}, fmt.Errorf("parse parameters: %w", err)
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, err
	}
	return params, nil
}

// Validate rejects parameter sets the evolution engine cannot run with.
func (p Parameters) Validate() error {
	if p.Setup.PopulationSize <= 0 {
		return fmt.Errorf("setup.population_size must be > 0")
	}
	if p.Setup.SurvivalRate <= 0 || p.Setup.SurvivalRate > 1 {
		return fmt.Errorf("setup.survival_rate must be in (0, 1]")
	}
	if p.Setup.InputDimension <= 0 {
		return fmt.Errorf("setup.input_dimension must be > 0")
	}
	if p.Setup.OutputDimension <= 0 {
		return fmt.Errorf("setup.output_dimension must be > 0")
	}
	if p.Setup.NoveltyNearestNeighbors <= 0 {
		return fmt.Errorf("setup.novelty_nearest_neighbors must be > 0")
	}
	if _, err := genotype.ParseActivation(p.Activations.OutputNodes); err != nil {
		return fmt.Errorf("activations.output_nodes: %w", err)
	}
	if len(p.Activations.HiddenNodes) == 0 {
		return fmt.Errorf("activations.hidden_nodes must not be empty")
	}
	for _, name := range p.Activations.HiddenNodes {
		if _, err := genotype.ParseActivation(name); err != nil {
			return fmt.Errorf("activations.hidden_nodes: %w", err)
		}
	}
	for name, chance := range map[string]float64{
		"mutation.new_connection_chance":          p.Mutation.NewConnectionChance,
		"mutation.new_node_chance":                p.Mutation.NewNodeChance,
		"mutation.connection_is_recurrent_chance": p.Mutation.ConnectionIsRecurrentChance,
		"mutation.change_activation_chance":       p.Mutation.ChangeActivationChance,
	} {
		if chance < 0 || chance > 1 {
			return fmt.Errorf("%s must be in [0, 1]", name)
		}
	}
	if p.Mutation.WeightPerturbationStdDev <= 0 {
		return fmt.Errorf("mutation.weight_perturbation_std_dev must be > 0")
	}
	return nil
}

// EvoConfig converts the parameters into the evolution engine's config.
// Call Validate first; unknown activation names surface here as errors.
func (p Parameters) EvoConfig() (evo.Config, error) {
	output, err := genotype.ParseActivation(p.Activations.OutputNodes)
	if err != nil {
		return evo.Config{}, err
	}
	hidden := make([]genotype.Activation, 0, len(p.Activations.HiddenNodes))
	for _, name := range p.Activations.HiddenNodes {
		activation, err := genotype.ParseActivation(name)
		if err != nil {
			return evo.Config{}, err
		}
		hidden = append(hidden, activation)
	}

	return evo.Config{
		Seed:                    p.Seed,
		PopulationSize:          p.Setup.PopulationSize,
		SurvivalRate:            p.Setup.SurvivalRate,
		InputDimension:          p.Setup.InputDimension,
		OutputDimension:         p.Setup.OutputDimension,
		NoveltyNearestNeighbors: p.Setup.NoveltyNearestNeighbors,
		OutputActivation:        output,
		Mutation: genotype.MutationConfig{
			NewConnectionChance:         p.Mutation.NewConnectionChance,
			NewNodeChance:               p.Mutation.NewNodeChance,
			ConnectionIsRecurrentChance: p.Mutation.ConnectionIsRecurrentChance,
			ChangeActivationChance:      p.Mutation.ChangeActivationChance,
			WeightPerturbationStdDev:    p.Mutation.WeightPerturbationStdDev,
			HiddenActivations:           hidden,
		},
	}, nil
}
