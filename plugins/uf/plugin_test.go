package uf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/mcsat-core/core"
)

func newSolverWithPlugin() (*core.Solver, *Plugin) {
	s := core.New()
	p := New(s.Arena())
	s.Registry().Register(p)
	return s, p
}

func TestEqCanonicalizesOperandsByID(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())

	eq1 := p.typ.Eq(a, b)
	eq2 := p.typ.Eq(b, a)

	assert.Same(t, eq1, eq2)
	view := eq1.View.(Equal)
	assert.True(t, view.A.ID < view.B.ID)
}

func TestEqualTermWatchesItsOwnAssignment(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	eq := p.typ.Eq(a, b)

	assert.Contains(t, eq.Watchers, eq)
}

func TestAssertingEqualMergesEquivalenceClasses(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	eq := p.typ.Eq(a, b)

	require.NoError(t, s.AddClause([]core.AtomID{eq.Var.(core.BoolVar).Pos.ID}, nil))

	assert.Equal(t, p.find(a.ID), p.find(b.ID))
}

func TestBacktrackUndoesExactlyTheMerge(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	c := s.MkTerm(ID, Const{Name: "c"}, p.Type())
	eqAB := p.typ.Eq(a, b)
	eqBC := p.typ.Eq(b, c)

	require.NoError(t, s.PushAssumption(eqAB.Var.(core.BoolVar).Pos.ID))
	assert.Equal(t, p.find(a.ID), p.find(b.ID))

	require.NoError(t, s.PushAssumption(eqBC.Var.(core.BoolVar).Pos.ID))
	assert.Equal(t, p.find(a.ID), p.find(c.ID), "a, b, c should all be one class")

	s.PopAssumption()
	assert.Equal(t, p.find(a.ID), p.find(b.ID), "undoing b=c must leave a=b intact")
	assert.NotEqual(t, p.find(a.ID), p.find(c.ID), "b=c must be fully undone")

	s.PopAssumption()
	assert.NotEqual(t, p.find(a.ID), p.find(b.ID), "undoing a=b must restore both as singleton classes")
	assert.Equal(t, p.find(a.ID), a.ID)
	assert.Equal(t, p.find(b.ID), b.ID)
}

func TestBacktrackRestoresPriorMergeWhenClassWasAlreadyMerged(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	c := s.MkTerm(ID, Const{Name: "c"}, p.Type())
	eqAB := p.typ.Eq(a, b)
	eqAC := p.typ.Eq(a, c)

	require.NoError(t, s.AddClause([]core.AtomID{eqAB.Var.(core.BoolVar).Pos.ID}, nil))
	require.NoError(t, s.PushAssumption(eqAC.Var.(core.BoolVar).Pos.ID))
	assert.Equal(t, p.find(b.ID), p.find(c.ID), "merging a=c should also join b's class")

	s.PopAssumption()
	assert.Equal(t, p.find(a.ID), p.find(b.ID), "the level-0 a=b merge must survive")
	assert.NotEqual(t, p.find(a.ID), p.find(c.ID), "the popped a=c merge must not")
}

func TestDecideDefaultsToOwnEquivalenceClassRepresentative(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())

	v := p.typ.Decide(nil, a)
	assert.Equal(t, a.ID, v)
}

func TestEvalComparesEquivalenceClassRepresentatives(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	eq := p.typ.Eq(a, b)

	assert.Equal(t, core.Unknown, p.Eval(eq))

	_, err := s.Solve(context.Background())
	require.NoError(t, err)

	result := p.Eval(eq)
	require.True(t, result.Known)
	assert.Equal(t, false, result.Value, "distinct constants default to distinct equivalence classes")
}

func TestDeleteRemovesParentMapEntry(t *testing.T) {
	_, p := newSolverWithPlugin()
	a := &core.Term{ID: 777}
	p.parent[a.ID] = 999

	p.Delete(a)

	_, ok := p.parent[a.ID]
	assert.False(t, ok)
}

func TestSubtermsYieldsAppArgsAndEqualOperands(t *testing.T) {
	s, p := newSolverWithPlugin()
	a := s.MkTerm(ID, Const{Name: "a"}, p.Type())
	b := s.MkTerm(ID, Const{Name: "b"}, p.Type())
	app := s.MkTerm(ID, App{Func: "f", Args: []*core.Term{a, b}}, p.Type())
	eq := p.typ.Eq(a, b)

	var yielded []*core.Term
	yield := func(t *core.Term) { yielded = append(yielded, t) }

	p.Subterms(app.View, yield)
	assert.Equal(t, []*core.Term{a, b}, yielded)

	yielded = nil
	p.Subterms(eq.View, yield)
	assert.ElementsMatch(t, []*core.Term{a, b}, yielded)
}
