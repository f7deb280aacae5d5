package core

import "github.com/operator-framework/mcsat-core/internal/invariant"

// Conflict records a falsified clause discovered during propagation or
// raised directly by a plugin (spec §4.4, §4.5).
type Conflict struct {
	Clause *Clause
}

// queue is a FIFO of newly-assigned terms awaiting propagation. Spec §9
// calls for a ring buffer to avoid per-iteration allocation on the hot
// path; this keeps the ring-buffer shape (head index, wraparound-free
// growth) without hand-rolling unsafe pointer arithmetic.
type queue struct {
	buf  []*Term
	head int
}

func (q *queue) push(t *Term) {
	q.buf = append(q.buf, t)
}

func (q *queue) pop() (*Term, bool) {
	if q.head >= len(q.buf) {
		return nil, false
	}
	t := q.buf[q.head]
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}
	return t, true
}

func (q *queue) empty() bool { return q.head >= len(q.buf) }

func (q *queue) reset() {
	q.buf = q.buf[:0]
	q.head = 0
}

// assignAtom assigns atom a's term to make a true, at the current trail
// level, with the given reason, and enqueues it for propagation. Spec
// invariant 3 is the caller's responsibility: reason must be consistent
// with a being the clause's unit literal at this moment.
func (s *Solver) assignAtom(a *Atom, reason Reason) {
	s.trail.Assign(a.Term, !a.Neg, reason)
	s.queue.push(a.Term)
}

// assignTerm assigns a semantic (non-Boolean) term's value, at the
// current trail level, with the given reason, and enqueues it.
func (s *Solver) assignTerm(t *Term, value Value, reason Reason) {
	s.trail.Assign(t, value, reason)
	s.queue.push(t)
}

// falseAtomOf returns the atom of t that is currently false, given that t
// was just assigned. t must be Boolean and assigned.
func falseAtomOf(t *Term) *Atom {
	v := t.Var.(BoolVar)
	if v.Pos.IsFalse() {
		return v.Pos
	}
	return v.Neg
}

// propagate drains the propagation queue, alternating Boolean BCP and
// generalized theory watch callbacks, until it empties or a conflict is
// raised (spec §4.3's "Propagation fixpoint"). It returns the conflict,
// or nil if a fixpoint was reached.
func (s *Solver) propagate() *Conflict {
	for {
		if s.conflict != nil {
			c := s.conflict
			s.conflict = nil
			s.queue.reset()
			return c
		}
		t, ok := s.queue.pop()
		if !ok {
			return nil
		}
		if t.IsBoolean() {
			if conf := s.propagateBoolean(t); conf != nil {
				s.queue.reset()
				return conf
			}
		}
		s.runGeneralizedWatches(t)
		if s.conflict != nil {
			c := s.conflict
			s.conflict = nil
			s.queue.reset()
			return c
		}
	}
}

// propagateBoolean runs Boolean BCP for the atom of t that just became
// false, per spec §4.3.
func (s *Solver) propagateBoolean(t *Term) *Conflict {
	falseAtom := falseAtomOf(t)
	watchers := falseAtom.WatchedBy
	// Iterate a snapshot: updateBooleanWatches mutates WatchedBy in place
	// via rewatch/propagation side effects.
	snapshot := make([]*Clause, len(watchers))
	copy(snapshot, watchers)
	for _, c := range snapshot {
		if c.IsDeleted() {
			continue
		}
		slot := c.watchSlotFor(falseAtom.ID)
		if slot < 0 {
			// Already rewatched away from this atom by an earlier
			// clause's side effect in this same loop.
			continue
		}
		switch s.updateBooleanWatches(c, slot) {
		case bcpConflict:
			return &Conflict{Clause: c}
		case bcpPropagated, bcpOK:
		default:
			invariant.Check(false, "unreachable bcpResult")
		}
	}
	return nil
}
