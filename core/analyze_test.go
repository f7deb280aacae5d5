package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonClauseOfDispatchesByReasonType(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 2)
	c := MkClause([]AtomID{lit(vars, 1), lit(vars, 2)}, Hyp{})

	s.trail.Assign(vars[0], true, Bcp{Clause: c})
	assert.Same(t, c, s.reasonClauseOf(vars[0]))

	thunkCalls := 0
	lazy := &BcpLazy{Thunk: func() *Clause { thunkCalls++; return c }}
	s.trail.Assign(vars[1], true, lazy)
	assert.Same(t, c, s.reasonClauseOf(vars[1]))
	assert.Same(t, c, s.reasonClauseOf(vars[1]))
	assert.Equal(t, 1, thunkCalls, "BcpLazy.Force must memoize")
}

func TestMinimizeDropsSubsumedLiterals(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 4)

	// var2 was Bcp-propagated by a clause whose only other atom is
	// already present in the learned clause, so it is removable.
	reasonC := MkClause([]AtomID{lit(vars, 1), lit(vars, -2)}, Hyp{})
	s.trail.Decide(vars[0], true)              // level 1, var1=true
	s.trail.Assign(vars[1], true, Bcp{Clause: reasonC}) // var2=true at level 1

	learned := []AtomID{lit(vars, 3), lit(vars, 1), lit(vars, 2)}
	kept := s.minimize(learned)

	assert.Equal(t, []AtomID{lit(vars, 3), lit(vars, 1)}, kept)
}

func TestMinimizeKeepsDecisionLiterals(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 2)
	s.trail.Decide(vars[0], true)
	s.trail.Decide(vars[1], true)

	learned := []AtomID{lit(vars, -1), lit(vars, 2)}
	kept := s.minimize(learned)
	assert.Equal(t, learned, kept)
}

func TestSynthesizeEvalClauseDropsNonBooleanUsedTerms(t *testing.T) {
	s := New()
	vars := mkBoolVars(s, 2)
	boolUsed := vars[1]
	boolUsed.Assigned = true
	boolUsed.Value = true

	semanticUsed := &Term{ID: 999, Var: NoVar{}, Assigned: true, Value: 3.14, Level: -1, HeapIdx: -1}

	used := []*Term{boolUsed, semanticUsed}
	s.trail.Assign(vars[0], true, Eval{Used: used})
	c := s.synthesizeEvalClause(vars[0], Eval{Used: used})

	bv0 := vars[0].Var.(BoolVar)
	bv1 := vars[1].Var.(BoolVar)
	require.Contains(t, c.Atoms, bv0.Pos.ID)
	require.Contains(t, c.Atoms, bv1.Neg.ID)
	assert.Len(t, c.Atoms, 2, "the semantic used term contributes no literal")
}
