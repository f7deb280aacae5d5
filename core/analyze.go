package core

import "github.com/operator-framework/mcsat-core/internal/invariant"

// prependUnique puts id at the front of rest, removing any existing
// occurrence of id first so the result never holds it twice.
func prependUnique(id AtomID, rest []AtomID) []AtomID {
	out := make([]AtomID, 1, len(rest)+1)
	out[0] = id
	for _, a := range rest {
		if a != id {
			out = append(out, a)
		}
	}
	return out
}

// reasonClauseOf returns the clause that justifies t's current
// assignment, synthesizing one lazily for Eval reasons (spec §4.4,
// §9). Decision-reasoned terms have no reason clause; callers must not
// ask for one.
func (s *Solver) reasonClauseOf(t *Term) *Clause {
	switch r := t.Reason.(type) {
	case Bcp:
		return r.Clause
	case *BcpLazy:
		return r.Force()
	case Root:
		return r.Clause
	case LemmaReason:
		return r.Clause
	case Eval:
		return s.synthesizeEvalClause(t, r)
	default:
		invariant.Check(false, "term %s has no resolvable reason clause", t)
		return nil
	}
}

// synthesizeEvalClause builds the tautology a Plugin.Eval propagation
// implicitly relies on: the propagated atom, together with the negation
// of every Boolean term it was derived from. Semantic (non-Boolean) used
// terms can't be expressed as clause literals directly; a plugin that
// needs those to survive conflict analysis should propagate with
// PropagateBoolLemma instead, which carries its own explicit clause.
func (s *Solver) synthesizeEvalClause(t *Term, r Eval) *Clause {
	v := t.Var.(BoolVar)
	b, _ := t.Value.(bool)
	trueAtom := v.Pos
	if !b {
		trueAtom = v.Neg
	}
	atoms := []AtomID{trueAtom.ID}
	for _, u := range r.Used {
		uv, ok := u.Var.(BoolVar)
		if !ok || !u.Assigned {
			continue
		}
		ub, _ := u.Value.(bool)
		if ub {
			atoms = append(atoms, uv.Neg.ID)
		} else {
			atoms = append(atoms, uv.Pos.ID)
		}
	}
	return MkClause(atoms, Lemma{L: "eval"})
}

// analyze performs 1-UIP conflict analysis starting from conf, resolving
// backward through the trail until exactly one literal at the current
// decision level remains (spec §4.4). It returns the learned clause,
// with the asserting (UIP) literal first, and the level to backtrack to.
func (s *Solver) analyze(conf *Conflict) (*Clause, int) {
	d := s.trail.Level()
	var touched []*Term
	var learnedAtoms []AtomID
	var steps []ResolutionStep
	counter := 0

	seed := func(c *Clause) {
		for _, id := range c.Atoms {
			t := s.arena.AtomByID(id).Term
			if t.hasFlag(flagSeen) {
				continue
			}
			t.setFlag(flagSeen)
			touched = append(touched, t)
			s.bumpVar(t)
			if t.Level == d {
				counter++
			} else {
				learnedAtoms = append(learnedAtoms, id)
			}
		}
	}
	seed(conf.Clause)

	ptr := s.trail.Len() - 1
	for counter > 1 {
		for !s.trail.At(ptr).hasFlag(flagSeen) {
			ptr--
		}
		t := s.trail.At(ptr)
		ptr--
		counter--

		rc := s.reasonClauseOf(t)
		steps = append(steps, ResolutionStep{Other: rc, Pivot: t})
		for _, id := range rc.Atoms {
			ra := s.arena.AtomByID(id)
			if ra.Term == t || ra.Term.hasFlag(flagSeen) {
				continue
			}
			ra.Term.setFlag(flagSeen)
			touched = append(touched, ra.Term)
			s.bumpVar(ra.Term)
			if ra.Term.Level == d {
				counter++
			} else {
				learnedAtoms = append(learnedAtoms, id)
			}
		}
	}

	for !s.trail.At(ptr).hasFlag(flagSeen) {
		ptr--
	}
	uip := s.trail.At(ptr)
	uipAtom := falseAtomOf(uip)
	// Ordinarily uipAtom was never added to learnedAtoms: seeding only
	// puts an atom there when its term's level != d, and the resolution
	// loop consumes every level-d atom except the UIP. The exception is
	// a conflict clause with no level-d literal at all (counter starts
	// at 0, e.g. a theory Eval conflict about an older decision): the
	// backward scan still finds that single seeded atom as "the UIP",
	// which would otherwise duplicate it at the front.
	learnedAtoms = prependUnique(uipAtom.ID, learnedAtoms)

	for _, t := range touched {
		t.clearFlag(flagSeen)
	}

	learnedAtoms = s.minimize(learnedAtoms)

	backtrackLevel := 0
	for _, id := range learnedAtoms[1:] {
		if lvl := s.arena.AtomByID(id).Term.Level; lvl > backtrackLevel {
			backtrackLevel = lvl
		}
	}

	s.bumpClauseActivity(conf.Clause)
	for _, st := range steps {
		s.bumpClauseActivity(st.Other)
	}
	s.decayVarInc()
	s.decayClauseInc()

	learned := MkClause(learnedAtoms, Steps{Init: conf.Clause, Steps: steps})
	return learned, backtrackLevel
}

// analyzeEmpty handles a conflict detected at decision level 0: with no
// decision literal to stop at, every atom ultimately resolves away,
// producing the literally empty clause the proof object is rooted at
// (spec §7 kind 1, §8 scenario 1).
func (s *Solver) analyzeEmpty(conf *Conflict) *Clause {
	var touched []*Term
	var steps []ResolutionStep
	counter := 0

	seed := func(c *Clause) {
		for _, id := range c.Atoms {
			t := s.arena.AtomByID(id).Term
			if t.hasFlag(flagSeen) {
				continue
			}
			t.setFlag(flagSeen)
			touched = append(touched, t)
			counter++
		}
	}
	seed(conf.Clause)

	ptr := s.trail.Len() - 1
	for counter > 0 {
		for ptr >= 0 && !s.trail.At(ptr).hasFlag(flagSeen) {
			ptr--
		}
		invariant.Check(ptr >= 0, "conflict analysis at level 0 ran off the trail before reaching the empty clause")
		t := s.trail.At(ptr)
		ptr--
		counter--

		rc := s.reasonClauseOf(t)
		steps = append(steps, ResolutionStep{Other: rc, Pivot: t})
		for _, id := range rc.Atoms {
			ra := s.arena.AtomByID(id)
			if ra.Term == t || ra.Term.hasFlag(flagSeen) {
				continue
			}
			ra.Term.setFlag(flagSeen)
			touched = append(touched, ra.Term)
			counter++
		}
	}

	for _, t := range touched {
		t.clearFlag(flagSeen)
	}
	return MkClause(nil, Steps{Init: conf.Clause, Steps: steps})
}

// minimize drops literals from learned (other than the UIP at index 0)
// whose antecedent is already subsumed by the rest of the clause: every
// other atom in its reason clause is either already present or a level-0
// ground fact. This is a bounded, single-pass self-subsumption check, not
// a recursive one, to avoid quadratic blowups on large learned clauses
// (spec §4.4, §9).
func (s *Solver) minimize(learned []AtomID) []AtomID {
	if len(learned) <= 1 {
		return learned
	}
	present := make(map[AtomID]bool, len(learned))
	for _, id := range learned {
		present[id] = true
	}
	kept := learned[:1]
	for _, id := range learned[1:] {
		t := s.arena.AtomByID(id).Term
		if _, isDecision := t.Reason.(Decision); isDecision || t.Reason == nil {
			kept = append(kept, id)
			continue
		}
		rc := s.reasonClauseOf(t)
		removable := true
		for _, rid := range rc.Atoms {
			ra := s.arena.AtomByID(rid)
			if ra.Term == t || present[rid] || ra.Term.Level == 0 {
				continue
			}
			removable = false
			break
		}
		if !removable {
			kept = append(kept, id)
		}
	}
	return kept
}
