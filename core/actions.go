package core

// pluginActions implements Actions on behalf of a single plugin-owned
// term, per spec §4.5. Plugins never touch the trail directly; every
// effect is recorded here and applied (or queued) by the solver.
type pluginActions struct {
	s     *Solver
	owner *Term
}

func (s *Solver) actionsFor(owner *Term) Actions {
	return &pluginActions{s: s, owner: owner}
}

func (a *pluginActions) PushClause(c *Clause) {
	if err := a.s.addAndAttach(c, false); err != nil {
		a.s.log.WithError(err).Debug("plugin-pushed clause raised a conflict")
	}
}

func (a *pluginActions) PropagateBoolEval(t *Term, b bool, used []*Term) {
	a.s.propagateEval(t, b, used)
}

func (a *pluginActions) PropagateBoolLemma(t *Term, b bool, others []AtomID, lemma LemmaPayload) {
	a.s.propagateLemma(t, b, others, lemma)
}

func (a *pluginActions) RaiseConflict(atoms []AtomID, lemma LemmaPayload) {
	a.s.raiseConflict(atoms, lemma)
}

func (a *pluginActions) OnBacktrack(f func()) {
	a.s.trail.OnBacktrack(f)
}

func (a *pluginActions) CurrentLevel() int {
	return a.s.trail.Level()
}

func (a *pluginActions) Watch(u *Term) {
	a.s.watchTerm(a.owner, u)
}

// propagateEval implements Actions.PropagateBoolEval: assert t=b with
// reason Eval(used). If t is already assigned to !b, this is plugin
// misuse (spec §7 kind 3) and is converted into a conflict clause made
// of that (now false) atom and the currently false atom of each Boolean
// used term (see evalMisuseClause).
func (s *Solver) propagateEval(t *Term, b bool, used []*Term) {
	v := t.Var.(BoolVar)
	atom := v.Pos
	if !b {
		atom = v.Neg
	}
	if atom.IsTrue() {
		return
	}
	if atom.IsFalse() {
		s.conflict = &Conflict{Clause: evalMisuseClause(atom, used)}
		return
	}
	s.assignAtom(atom, Eval{Used: used})
}

// propagateLemma implements Actions.PropagateBoolLemma: assert t=b
// justified by the theory tautology others ∨ (t=b), where every atom in
// others is currently false.
func (s *Solver) propagateLemma(t *Term, b bool, others []AtomID, lemma LemmaPayload) {
	v := t.Var.(BoolVar)
	atom := v.Pos
	if !b {
		atom = v.Neg
	}
	if atom.IsTrue() {
		return
	}
	if atom.IsFalse() {
		all := append(append([]AtomID{}, others...), atom.ID)
		s.conflict = &Conflict{Clause: MkClause(all, Lemma{L: lemma})}
		return
	}
	all := append(append([]AtomID{}, others...), atom.ID)
	reasonClause := MkClause(all, Lemma{L: lemma})
	s.assignAtom(atom, LemmaReason{Clause: reasonClause})
}

// raiseConflict implements Actions.RaiseConflict: every atom in atoms
// must be false now (spec §4.5); the core records the conflicting clause
// for the analyzer.
func (s *Solver) raiseConflict(atoms []AtomID, lemma LemmaPayload) {
	s.conflict = &Conflict{Clause: MkClause(atoms, Lemma{L: lemma})}
}

// evalMisuseClause synthesizes the clause a Bcp-style conflict analysis
// can resolve through when a plugin tried to Eval-propagate an atom that
// was already assigned the opposite value (spec §7 kind 3: plugin misuse
// becomes a conflict, not a panic). atom is the literal the plugin wanted
// to assert; propagateEval only calls this once atom.IsFalse(), so atom
// itself (not its negation) is the literal every clause atom must be for
// analyze to treat this as an ordinary falsified clause.
func evalMisuseClause(atom *Atom, used []*Term) *Clause {
	atoms := make([]AtomID, 0, len(used)+1)
	atoms = append(atoms, atom.ID)
	for _, u := range used {
		if v, ok := u.Var.(BoolVar); ok {
			if u.Assigned {
				b, _ := u.Value.(bool)
				if b {
					atoms = append(atoms, v.Neg.ID)
				} else {
					atoms = append(atoms, v.Pos.ID)
				}
			}
		}
	}
	return MkClause(atoms, Lemma{L: "plugin-misuse"})
}
