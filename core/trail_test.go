package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailDecideOpensNewLevel(t *testing.T) {
	tr := NewTrail()
	a := &Term{ID: 1, Level: -1}
	b := &Term{ID: 2, Level: -1}

	tr.Decide(a, true)
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 1, a.Level)

	tr.Assign(b, false, Decision{})
	assert.Equal(t, 1, b.Level)
	assert.Equal(t, 2, tr.Len())
}

func TestTrailBacktrackUnassignsAndRunsHooksLIFO(t *testing.T) {
	tr := NewTrail()
	a := &Term{ID: 1, Level: -1}
	b := &Term{ID: 2, Level: -1}

	tr.Decide(a, true)
	var order []int
	tr.OnBacktrack(func() { order = append(order, 1) })
	tr.OnBacktrack(func() { order = append(order, 2) })
	tr.Decide(b, true)

	tr.BacktrackTo(0)

	assert.Equal(t, []int{2, 1}, order)
	assert.False(t, a.Assigned)
	assert.False(t, b.Assigned)
	assert.Equal(t, 0, tr.Level())
	assert.Equal(t, 0, tr.Len())
}

func TestTrailBacktrackPartialLevel(t *testing.T) {
	tr := NewTrail()
	a := &Term{ID: 1, Level: -1}
	b := &Term{ID: 2, Level: -1}
	c := &Term{ID: 3, Level: -1}

	tr.Decide(a, true)
	tr.Decide(b, true)
	tr.Decide(c, true)

	tr.BacktrackTo(1)

	assert.True(t, a.Assigned)
	assert.False(t, b.Assigned)
	assert.False(t, c.Assigned)
	assert.Equal(t, 1, tr.Level())
}

func TestTrailPushUsesArbitraryReason(t *testing.T) {
	tr := NewTrail()
	a := &Term{ID: 1, Level: -1}
	c := &Clause{Name: "c1"}

	tr.Push(a, true, Root{Clause: c})
	require.Equal(t, 1, tr.Level())
	root, ok := a.Reason.(Root)
	require.True(t, ok)
	assert.Same(t, c, root.Clause)
}

func TestTrailAssignPanicsOnDoubleAssign(t *testing.T) {
	tr := NewTrail()
	a := &Term{ID: 1, Level: -1}
	tr.Assign(a, true, Decision{})
	assert.Panics(t, func() {
		tr.Assign(a, true, Decision{})
	})
}
