package genotype

import "fmt"

// Activation tags the transfer function a node applies. The numeric
// implementations live in internal/nn; the genotype only carries the tag.
type Activation string

const (
	ActivationLinear   Activation = "linear"
	ActivationSigmoid  Activation = "sigmoid"
	ActivationTanh     Activation = "tanh"
	ActivationGaussian Activation = "gaussian"
	ActivationStep     Activation = "step"
	ActivationSine     Activation = "sine"
	ActivationCosine   Activation = "cosine"
	ActivationInverse  Activation = "inverse"
	ActivationAbsolute Activation = "absolute"
	ActivationRelu     Activation = "relu"
	ActivationSquared  Activation = "squared"
)

// AllActivations lists every known activation tag.
func AllActivations() []Activation {
	return []Activation{
		ActivationLinear,
		ActivationSigmoid,
		ActivationTanh,
		ActivationGaussian,
		ActivationStep,
		ActivationSine,
		ActivationCosine,
		ActivationInverse,
		ActivationAbsolute,
		ActivationRelu,
		ActivationSquared,
	}
}

// ParseActivation validates a configured activation name.
func ParseActivation(name string) (Activation, error) {
	for _, activation := range AllActivations() {
		if Activation(name) == activation {
			return activation, nil
		}
	}
	return "", fmt.Errorf("unknown activation function: %q", name)
}
