package Poisson3D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantCase(t *testing.T) {
	c, err := NewPoisson(8, 2, 2, 10, 1.e-10, CONSTANT)
	require.NoError(t, err)
	require.NoError(t, c.Run())

	// zero source with a constant initial guess is an exact solution
	for i := range c.U[0].Data {
		assert.InDelta(t, 1.0, c.U[0].Data[i], 1.e-12)
	}
	assert.Less(t, c.MaxResidual(), 1.e-10)
}

func TestSinusoidCase(t *testing.T) {
	c, err := NewPoisson(16, 3, 10, 20, 1.e-9, SINUSOID)
	require.NoError(t, err)

	initial := c.MaxResidual()
	require.NoError(t, c.Run())
	final := c.MaxResidual()

	assert.Less(t, final, 1.e-5)
	assert.Less(t, final, initial/100)
}
