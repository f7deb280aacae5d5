package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofWalkVisitsInDependencyOrder(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 2)

	c1 := MkClause([]AtomID{lit(vars, 1), lit(vars, 2)}, Hyp{})
	c2 := MkClause([]AtomID{lit(vars, -1), lit(vars, 2)}, Hyp{})
	learned := MkClause([]AtomID{lit(vars, 2)}, Steps{
		Init:  c1,
		Steps: []ResolutionStep{{Other: c2, Pivot: vars[0]}},
	})

	var visited []*Clause
	require.NoError(t, ProofOf(learned).Walk(func(c *Clause) { visited = append(visited, c) }))
	require.Len(t, visited, 3)
	assert.Same(t, c1, visited[0])
	assert.Same(t, c2, visited[1])
	assert.Same(t, learned, visited[2])
}

func TestProofWalkDetectsMissingPivot(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 3)

	c1 := MkClause([]AtomID{lit(vars, 1), lit(vars, 2)}, Hyp{})
	c2 := MkClause([]AtomID{lit(vars, -3), lit(vars, 2)}, Hyp{}) // does not mention var 1
	learned := MkClause([]AtomID{lit(vars, 2)}, Steps{
		Init:  c1,
		Steps: []ResolutionStep{{Other: c2, Pivot: vars[0]}},
	})

	err := ProofOf(learned).Walk(func(*Clause) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProofMalformed)
}

func TestProofWalkTracksAccumulatedResolventAcrossSteps(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 4)

	// c1 carries three literals, so the second step's pivot (var 2) comes
	// from Init rather than from the first step's Other clause (c2), the
	// shape that previously tripped a false ErrProofMalformed.
	c1 := MkClause([]AtomID{lit(vars, 1), lit(vars, 2), lit(vars, 3)}, Hyp{})
	c2 := MkClause([]AtomID{lit(vars, -1), lit(vars, 4)}, Hyp{})
	c3 := MkClause([]AtomID{lit(vars, -2), lit(vars, 4)}, Hyp{})
	learned := MkClause([]AtomID{lit(vars, 3), lit(vars, 4)}, Steps{
		Init: c1,
		Steps: []ResolutionStep{
			{Other: c2, Pivot: vars[0]},
			{Other: c3, Pivot: vars[1]},
		},
	})

	var visited []*Clause
	require.NoError(t, ProofOf(learned).Walk(func(c *Clause) { visited = append(visited, c) }))
	require.Len(t, visited, 4)
	assert.Same(t, c1, visited[0])
	assert.Same(t, c2, visited[1])
	assert.Same(t, c3, visited[2])
	assert.Same(t, learned, visited[3])
}

func TestReducesToEmptyChecksAtomCount(t *testing.T) {
	empty := MkClause(nil, Hyp{})
	assert.True(t, ProofOf(empty).ReducesToEmpty())

	nonEmpty := MkClause([]AtomID{1}, Hyp{})
	assert.False(t, ProofOf(nonEmpty).ReducesToEmpty())
}
