package dimacs

import (
	"github.com/operator-framework/mcsat-core/core"
)

// dimacsView wraps a DIMACS variable number as a hashable term view so
// loading the same formula twice (or re-parsing a round-tripped export)
// yields the same hash-consed Boolean terms (spec §3, §8 scenario 4).
type dimacsView struct {
	Var int
}

// Load adds every clause of f to s as a hypothesis, creating one Boolean
// term per DIMACS variable on first reference, and returns the terms
// indexed by variable number (index 0 unused).
func Load(s *core.Solver, f *Formula) ([]*core.Term, error) {
	vars := make([]*core.Term, f.NumVars+1)
	termFor := func(v int) *core.Term {
		if vars[v] == nil {
			vars[v] = s.MkBoolTerm(core.CorePluginID, dimacsView{Var: v})
		}
		return vars[v]
	}
	for _, c := range f.Clauses {
		atoms := make([]core.AtomID, len(c))
		for i, lit := range c {
			t := termFor(abs(lit))
			bv := t.Var.(core.BoolVar)
			if lit < 0 {
				atoms[i] = bv.Neg.ID
			} else {
				atoms[i] = bv.Pos.ID
			}
		}
		if err := s.AddClause(atoms, nil); err != nil {
			return vars, err
		}
	}
	return vars, nil
}

// Export reads back every hypothesis clause currently attached to s as a
// Formula, using varOf to recover each term's DIMACS variable number.
// Clauses added via PushAssumption are not included (spec §6 scope:
// "add clause" vs. the separate assumption stack).
func Export(s *core.Solver, varOf func(*core.Term) int) *Formula {
	f := &Formula{}
	for _, c := range s.HypClauses() {
		lits := make([]int, 0, c.Len())
		for _, id := range c.Atoms {
			a := s.Arena().AtomByID(id)
			v := varOf(a.Term)
			if v > f.NumVars {
				f.NumVars = v
			}
			if a.Neg {
				lits = append(lits, -v)
			} else {
				lits = append(lits, v)
			}
		}
		f.Clauses = append(f.Clauses, lits)
	}
	return f
}
