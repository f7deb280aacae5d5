package core

import (
	"context"

	"github.com/operator-framework/mcsat-core/internal/invariant"
	"github.com/pkg/errors"
)

// attachClause installs c's watches (spec invariant 2) and applies any
// immediate consequence: a conflict if every atom is false, a unit
// propagation if exactly one isn't, or nothing if two or more aren't.
// Clauses with fewer than two atoms are handled specially: a unit clause
// is asserted directly, an empty clause is an immediate conflict.
func (s *Solver) attachClause(c *Clause) *Conflict {
	switch len(c.Atoms) {
	case 0:
		return &Conflict{Clause: c}
	case 1:
		a := s.arena.AtomByID(c.Atoms[0])
		if a.IsFalse() {
			return &Conflict{Clause: c}
		}
		if a.IsUnassigned() {
			s.assignAtom(a, Root{Clause: c})
		}
		c.flags |= cAttached
		return nil
	}

	switch c.pickWatches(s.arena) {
	case 0:
		c.flags |= cAttached
		s.watchBoolean(c)
		return &Conflict{Clause: c}
	case 1:
		c.flags |= cAttached
		s.watchBoolean(c)
		a := s.arena.AtomByID(c.Atoms[0])
		s.assignAtom(a, Bcp{Clause: c})
		return nil
	default:
		c.flags |= cAttached
		s.watchBoolean(c)
		return nil
	}
}

func (s *Solver) watchBoolean(c *Clause) {
	a0 := s.arena.AtomByID(c.Atoms[c.watch0])
	a1 := s.arena.AtomByID(c.Atoms[c.watch1])
	a0.WatchedBy = append(a0.WatchedBy, c)
	a1.WatchedBy = append(a1.WatchedBy, c)
}

// Solve runs the search loop until it finds a model, proves
// unsatisfiability, or ctx is done (spec §4.8, §5). It is safe to call
// again after ErrIncomplete with more time on ctx: all solver state
// survives.
//
// A top-level recover converts an internal invariant.Violation panic
// (spec §7 kind 2) into a non-nil error instead of crashing the caller's
// process, mirroring OLM's HandleCrash-style top-level recovery.
func (s *Solver) Solve(ctx context.Context) (state State, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(invariant.Violation)
			if !ok {
				panic(r)
			}
			s.log.WithField("violation", v.What).Error("internal invariant violation")
			state, err = s.state, errors.Wrap(v, "internal invariant violation")
		}
	}()
	s.state = Solving
	for {
		select {
		case <-ctx.Done():
			return s.state, errors.Wrap(ErrIncomplete, ctx.Err().Error())
		default:
		}

		if conf := s.propagate(); conf != nil {
			if s.trail.Level() == 0 {
				s.state = Unsat
				s.finalConflict = s.analyzeEmpty(conf)
				return s.state, ErrUnsatAtLevelZero
			}
			learned, btLevel := s.analyze(conf)
			s.trail.BacktrackTo(btLevel)
			s.queue.reset()
			s.resyncHeap()
			s.clauses = append(s.clauses, learned)
			s.learned = append(s.learned, learned)
			for _, id := range learned.Atoms {
				s.heap.touch(s.arena.AtomByID(id).Term)
			}
			if c := s.attachClause(learned); c != nil {
				s.conflict = c
			}
			s.conflictsN++
			s.restart.onConflict()
			if len(s.learned) >= s.reduceCap {
				s.reduceDB()
			}
			continue
		}

		if s.restart.due(s.tuning) {
			s.trail.BacktrackTo(0)
			s.queue.reset()
			s.resyncHeap()
			s.restart.onRestart()
			continue
		}

		t := s.heap.pop()
		if t == nil {
			s.state = Sat
			s.result = s.snapshotModel()
			return s.state, nil
		}
		if t.Assigned {
			continue
		}
		s.decide(t)
	}
}

// decide extends the trail with a fresh decision on t (spec §4.6): a
// Boolean term is decided according to its saved polarity (the value it
// was last assigned, false the first time), a semantic term defers to
// its Type's Decide.
func (s *Solver) decide(t *Term) {
	if t.IsBoolean() {
		s.trail.Decide(t, t.SavedPolarity)
		s.queue.push(t)
		return
	}
	v := t.Type.Decide(s.actionsFor(t), t)
	invariant.Check(!t.Assigned, "plugin %s assigned %s during Decide instead of returning a value", s.registry.PluginOf(t).Name(), t)
	s.trail.Decide(t, v)
	s.queue.push(t)
}

// resyncHeap re-adds every unassigned, non-deleted term to the decision
// heap after a backtrack undoes assignments. The heap lazily drops
// assigned terms on pop rather than eagerly removing them on assign, so
// this is the counterpart that brings newly-unassigned terms back.
func (s *Solver) resyncHeap() {
	for _, t := range s.arena.terms {
		s.heap.touch(t)
	}
}

func (s *Solver) snapshotModel() []AppliedFact {
	facts := make([]AppliedFact, 0, s.trail.Len())
	for i := 0; i < s.trail.Len(); i++ {
		t := s.trail.At(i)
		facts = append(facts, AppliedFact{Term: t, Value: t.Value})
	}
	return facts
}
