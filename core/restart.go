package core

import "sort"

// luby returns the Luby restart sequence value for index x, scaled by y
// (spec §4.7): restart thresholds grow as y^0, y^0, y^1, y^0, y^0, y^1,
// y^2, ... This is the standard finite-subsequence formulation used by
// MiniSat-family solvers.
func luby(y float64, x int) float64 {
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	return pow(y, seq)
}

func pow(base float64, exp int) float64 {
	r := 1.0
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// restartState tracks progress toward the next Luby-scheduled restart.
type restartState struct {
	index            int
	conflictsSinceUp int64
}

func newRestartState(Tuning) restartState {
	return restartState{}
}

// due reports whether enough conflicts have elapsed since the last
// restart to trigger the next one.
func (rs *restartState) due(tuning Tuning) bool {
	threshold := int64(float64(tuning.LubyBase) * luby(2, rs.index))
	return rs.conflictsSinceUp >= threshold
}

func (rs *restartState) onConflict() {
	rs.conflictsSinceUp++
}

func (rs *restartState) onRestart() {
	rs.index++
	rs.conflictsSinceUp = 0
}

// reduceDB drops the least-active half of the learned clause database,
// skipping binary clauses (too valuable to discard) and any clause
// currently serving as a trail reason (spec §4.7). s.learned is left
// holding the surviving clauses, sorted by descending activity.
func (s *Solver) reduceDB() {
	sort.SliceStable(s.learned, func(i, j int) bool {
		return s.learned[i].Activity > s.learned[j].Activity
	})

	locked := make(map[*Clause]bool)
	for i := 0; i < s.trail.Len(); i++ {
		t := s.trail.At(i)
		if rc := reasonClauseIfAny(t); rc != nil {
			locked[rc] = true
		}
	}

	keepCount := len(s.learned) / 2
	var kept []*Clause
	for i, c := range s.learned {
		if c.Len() <= 2 || locked[c] || i < keepCount {
			kept = append(kept, c)
			continue
		}
		c.detach(s.arena)
		c.flags |= cDeleted
	}
	s.learned = kept
	s.rebuildClauseList()

	s.reduceCap = int(float64(s.reduceCap) * s.tuning.ReduceGrowth)
	s.reductions++
	if s.tuning.GCInterval > 0 && s.reductions%s.tuning.GCInterval == 0 {
		s.gcTerms()
	}
}

func (s *Solver) rebuildClauseList() {
	kept := make([]*Clause, 0, len(s.clauses))
	for _, c := range s.clauses {
		if !c.IsDeleted() {
			kept = append(kept, c)
		}
	}
	s.clauses = kept
}

// reasonClauseIfAny returns t's reason clause without synthesizing one,
// so a term assigned via Eval (which has no literal backing clause until
// conflict analysis needs it) never pins down a clause unnecessarily.
func reasonClauseIfAny(t *Term) *Clause {
	switch r := t.Reason.(type) {
	case Bcp:
		return r.Clause
	case *BcpLazy:
		return r.forced
	case Root:
		return r.Clause
	case LemmaReason:
		return r.Clause
	default:
		return nil
	}
}

// gcTerms sweeps every term unreachable from a live clause, the trail, or
// the decision heap, notifying its owning plugin via Delete (spec §9:
// term GC piggybacks on clause reduction). Reachability is transitive
// through each owning plugin's Subterms: a live Leq or Equal term keeps
// its operands alive even though those operands never appear as a
// clause literal themselves.
func (s *Solver) gcTerms() {
	marked := make(map[TermID]bool)
	var frontier []*Term
	mark := func(t *Term) {
		if marked[t.ID] {
			return
		}
		marked[t.ID] = true
		frontier = append(frontier, t)
	}
	for _, c := range s.clauses {
		for _, id := range c.Atoms {
			mark(s.arena.AtomByID(id).Term)
		}
	}
	for i := 0; i < s.trail.Len(); i++ {
		mark(s.trail.At(i))
	}
	for _, t := range s.heap.a {
		mark(t)
	}
	for len(frontier) > 0 {
		t := frontier[0]
		frontier = frontier[1:]
		if p := s.registry.PluginOf(t); p != nil {
			p.Subterms(t.View, mark)
		}
	}

	for _, t := range s.arena.terms {
		if t.hasFlag(flagIsDeleted) || marked[t.ID] {
			continue
		}
		t.setFlag(flagIsDeleted)
		s.heap.remove(t)
		if p := s.registry.PluginOf(t); p != nil {
			p.Delete(t)
		}
	}

	// A deleted term must not linger in any surviving term's Watchers
	// vector (spec invariant 6): a plugin may have registered t as a
	// watcher of some other live term before t itself became unreachable.
	for _, t := range s.arena.terms {
		if t.hasFlag(flagIsDeleted) || len(t.Watchers) == 0 {
			continue
		}
		kept := t.Watchers[:0]
		for _, w := range t.Watchers {
			if !w.hasFlag(flagIsDeleted) {
				kept = append(kept, w)
			}
		}
		t.Watchers = kept
	}
}
