package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents(t *testing.T) {
	g := mustWire(t, [][]int{
		{0, 0, 1},
		{1, 1, 0},
		{0, 1, 0},
		{1, 0, 0},
	})

	comps := Components(g)
	assert.Equal(t, [][]int{
		{0, 1},
		{5, 8, 11, 10},
		{6},
	}, comps)

	s := Stats(comps)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 7, s.OpenArea)
	assert.Equal(t, 4, s.MaxArea)
	assert.InDelta(t, 7.0/3.0, s.MeanArea, 1e-9)
}

func TestComponents_NoOpenCells(t *testing.T) {
	g := mustWire(t, [][]int{{1, 1}, {1, 1}})

	comps := Components(g)
	assert.Empty(t, comps)
	assert.Equal(t, ComponentStats{}, Stats(comps))
}

func TestComponents_DiagonalIsNotConnected(t *testing.T) {
	g := mustWire(t, [][]int{
		{0, 1},
		{1, 0},
	})

	assert.Len(t, Components(g), 2)
}
