package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkClauseSimplifyDedupesAndSorts(t *testing.T) {
	c := MkClause([]AtomID{5, 2, 5, 1, 2}, Simplify{})
	assert.Equal(t, []AtomID{1, 2, 5}, c.Atoms)
}

func TestMkClauseWithoutSimplifyPreservesOrder(t *testing.T) {
	c := MkClause([]AtomID{5, 2, 5, 1}, Hyp{})
	assert.Equal(t, []AtomID{5, 2, 5, 1}, c.Atoms)
}

func TestMkClauseCopiesAtomsSlice(t *testing.T) {
	atoms := []AtomID{1, 2, 3}
	c := MkClause(atoms, Hyp{})
	atoms[0] = 99
	assert.Equal(t, AtomID(1), c.Atoms[0])
}

func TestPickWatchesPartitionsNonFalseFirst(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 3)
	c := MkClause([]AtomID{lit(vars, 1), lit(vars, 2), lit(vars, 3)}, Hyp{})

	s.trail.Decide(vars[0], false) // atom for lit(vars,1) becomes false

	n := c.pickWatches(s.arena)
	require.Equal(t, 2, n)
	w0, w1 := c.WatchedAtoms()
	assert.False(t, s.arena.AtomByID(w0).IsFalse())
	assert.False(t, s.arena.AtomByID(w1).IsFalse())
}

func TestPickWatchesDetectsUnitAndConflict(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 2)
	c := MkClause([]AtomID{lit(vars, 1), lit(vars, 2)}, Hyp{})

	s.trail.Decide(vars[0], false)
	require.Equal(t, 1, c.pickWatches(s.arena))

	s.trail.Decide(vars[1], false)
	require.Equal(t, 0, c.pickWatches(s.arena))
}

func TestClauseRewatchUpdatesWatchedByVectors(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 3)
	c := MkClause([]AtomID{lit(vars, 1), lit(vars, 2), lit(vars, 3)}, Hyp{})
	require.Equal(t, 2, c.pickWatches(s.arena))
	s.watchBoolean(c)

	oldAtom := s.arena.AtomByID(c.Atoms[c.watch0])
	c.rewatch(s.arena, c.watch0, 2)
	newAtom := s.arena.AtomByID(c.Atoms[c.watch0])

	assert.NotContains(t, oldAtom.WatchedBy, c)
	assert.Contains(t, newAtom.WatchedBy, c)
}
