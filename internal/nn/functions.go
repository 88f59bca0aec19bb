package nn

import (
	"fmt"
	"math"

	"noveltyneat/internal/genotype"
)

// ActivationFunc is the numeric transfer function behind an activation tag.
type ActivationFunc func(x float64) float64

var activationFuncs = map[genotype.Activation]ActivationFunc{
	genotype.ActivationLinear:  func(x float64) float64 { return x },
	genotype.ActivationSigmoid: func(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) },
	genotype.ActivationTanh:    math.Tanh,
	genotype.ActivationGaussian: func(x float64) float64 {
		return math.Exp(-(x * x))
	},
	genotype.ActivationStep: func(x float64) float64 {
		if x > 0 {
			return 1.0
		}
		return 0.0
	},
	genotype.ActivationSine:     math.Sin,
	genotype.ActivationCosine:   math.Cos,
	genotype.ActivationInverse:  func(x float64) float64 { return -x },
	genotype.ActivationAbsolute: math.Abs,
	genotype.ActivationRelu: func(x float64) float64 {
		if x < 0 {
			return 0.0
		}
		return x
	},
	genotype.ActivationSquared: func(x float64) float64 { return x * x },
}

// Func resolves the numeric function for an activation tag.
func Func(activation genotype.Activation) (ActivationFunc, error) {
	fn, ok := activationFuncs[activation]
	if !ok {
		return nil, fmt.Errorf("no function for activation tag %q", activation)
	}
	return fn, nil
}
