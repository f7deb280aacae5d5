package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLubySequenceMatchesStandardFiniteSubsequence(t *testing.T) {
	// Standard 0-indexed Luby sequence scaled by 2: 1,1,2,1,1,2,4,1,...
	want := []float64{1, 1, 2, 1, 1, 2, 4, 1}
	for x, w := range want {
		assert.Equal(t, w, luby(2, x), "luby(2, %d)", x)
	}
}

func TestRestartStateDueAfterThreshold(t *testing.T) {
	tuning := DefaultTuning()
	tuning.LubyBase = 10
	rs := newRestartState(tuning)

	assert.False(t, rs.due(tuning))
	for i := 0; i < 10; i++ {
		rs.onConflict()
	}
	assert.True(t, rs.due(tuning))

	rs.onRestart()
	assert.Equal(t, int64(0), rs.conflictsSinceUp)
	assert.False(t, rs.due(tuning))
}

func TestReduceDBKeepsMostActiveHalf(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 6)

	// Three unlocked ternary learned clauses: len/2 = 1 is kept (the most
	// active, c1); the other two are deleted.
	c1 := MkClause([]AtomID{lit(vars, 1), lit(vars, 2), lit(vars, 3)}, Lemma{L: "x"})
	c2 := MkClause([]AtomID{lit(vars, 1), lit(vars, 4), lit(vars, 5)}, Lemma{L: "y"})
	c3 := MkClause([]AtomID{lit(vars, 2), lit(vars, 5), lit(vars, 6)}, Lemma{L: "z"})
	c1.Activity = 10
	c2.Activity = 1
	c3.Activity = 5
	for _, c := range []*Clause{c1, c2, c3} {
		require.Nil(t, s.attachClause(c))
	}
	s.learned = []*Clause{c1, c2, c3}
	s.clauses = append(s.clauses, c1, c2, c3)

	s.reduceDB()

	assert.Len(t, s.learned, 1)
	assert.Contains(t, s.learned, c1)
	assert.True(t, c2.IsDeleted())
	assert.True(t, c3.IsDeleted())
	assert.False(t, c1.IsDeleted())
}

func TestReduceDBNeverDropsBinaryOrLockedClauses(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 4)

	binary := MkClause([]AtomID{lit(vars, 1), lit(vars, 2)}, Lemma{L: "bin"})
	binary.Activity = 0

	locked := MkClause([]AtomID{lit(vars, 1), lit(vars, 3), lit(vars, 4)}, Lemma{L: "locked"})
	locked.Activity = 0
	require.Nil(t, s.attachClause(binary))
	require.Nil(t, s.attachClause(locked))
	s.assignAtom(s.arena.AtomByID(lit(vars, 3)), Bcp{Clause: locked})

	high := MkClause([]AtomID{lit(vars, 2), lit(vars, 3), lit(vars, 4)}, Lemma{L: "high"})
	high.Activity = 100
	require.Nil(t, s.attachClause(high))

	s.learned = []*Clause{binary, locked, high}
	s.clauses = append(s.clauses, binary, locked, high)

	s.reduceDB()

	assert.False(t, binary.IsDeleted(), "binary clause must survive reduction")
	assert.False(t, locked.IsDeleted(), "trail-locked clause must survive reduction")
}
