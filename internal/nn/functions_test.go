package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"noveltyneat/internal/genotype"
)

func TestEveryActivationTagHasAFunction(t *testing.T) {
	for _, activation := range genotype.AllActivations() {
		fn, err := Func(activation)
		require.NoError(t, err, "activation %s", activation)
		require.NotNil(t, fn)
	}
}

func TestFuncRejectsUnknownTag(t *testing.T) {
	_, err := Func(genotype.Activation("softmax"))
	require.Error(t, err)
}

func TestActivationValues(t *testing.T) {
	cases := []struct {
		activation genotype.Activation
		in         float64
		want       float64
	}{
		{genotype.ActivationLinear, 0.7, 0.7},
		{genotype.ActivationSigmoid, 0.0, 0.5},
		{genotype.ActivationTanh, 0.0, 0.0},
		{genotype.ActivationGaussian, 0.0, 1.0},
		{genotype.ActivationStep, 0.3, 1.0},
		{genotype.ActivationStep, -0.3, 0.0},
		{genotype.ActivationStep, 0.0, 0.0},
		{genotype.ActivationSine, 0.0, 0.0},
		{genotype.ActivationCosine, 0.0, 1.0},
		{genotype.ActivationInverse, 2.5, -2.5},
		{genotype.ActivationAbsolute, -1.5, 1.5},
		{genotype.ActivationRelu, -2.0, 0.0},
		{genotype.ActivationRelu, 2.0, 2.0},
		{genotype.ActivationSquared, -3.0, 9.0},
	}
	for _, c := range cases {
		fn, err := Func(c.activation)
		require.NoError(t, err)
		require.InDelta(t, c.want, fn(c.in), 1e-12, "%s(%v)", c.activation, c.in)
	}
}

func TestSigmoidSaturates(t *testing.T) {
	sigmoid, err := Func(genotype.ActivationSigmoid)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sigmoid(40), 1e-9)
	require.InDelta(t, 0.0, sigmoid(-40), 1e-9)
	require.False(t, math.IsNaN(sigmoid(-700)))
}
