package core

// bcpResult is returned by boolean watch maintenance for one clause.
type bcpResult int

const (
	bcpOK bcpResult = iota
	bcpPropagated
	bcpConflict
)

// updateBooleanWatches implements spec §4.3's Boolean watch maintenance
// for a single clause after atom falseAtom (one of c's two watched atoms)
// became false. It may swap in a new watched atom, propagate the other
// watched atom, or report a conflict.
func (s *Solver) updateBooleanWatches(c *Clause, falseSlot int) bcpResult {
	otherSlot := c.watch0
	if falseSlot == c.watch0 {
		otherSlot = c.watch1
	}
	other := s.arena.AtomByID(c.Atoms[otherSlot])
	if other.IsTrue() {
		return bcpOK
	}

	for i, id := range c.Atoms {
		if i == c.watch0 || i == c.watch1 {
			continue
		}
		cand := s.arena.AtomByID(id)
		if !cand.IsFalse() {
			c.rewatch(s.arena, falseSlot, i)
			return bcpOK
		}
	}

	if other.IsUnassigned() {
		s.assignAtom(other, Bcp{Clause: c})
		return bcpPropagated
	}
	return bcpConflict
}

// watchSlotFor returns the watch slot (0 or 1) of the given atom id within
// c, or -1 if it is not currently watched.
func (c *Clause) watchSlotFor(id AtomID) int {
	if c.Atoms[c.watch0] == id {
		return c.watch0
	}
	if c.Atoms[c.watch1] == id {
		return c.watch1
	}
	return -1
}

// watchTerm registers watcher to be notified (via its owning plugin's
// UpdateWatches) whenever u becomes assigned (spec §4.3's generalized
// watches, spec §3's "lazily-initialised vector of watching terms").
func (s *Solver) watchTerm(watcher, u *Term) {
	u.Watchers = append(u.Watchers, watcher)
}

// runGeneralizedWatches invokes UpdateWatches on every term currently
// watching u, removing any that ask to stop.
func (s *Solver) runGeneralizedWatches(u *Term) {
	watchers := u.Watchers
	kept := watchers[:0]
	for _, watcher := range watchers {
		p := s.registry.PluginOf(watcher)
		if p == nil {
			continue
		}
		action := p.UpdateWatches(s.actionsFor(watcher), watcher, u)
		if action == WatchKeep {
			kept = append(kept, watcher)
		}
	}
	u.Watchers = kept
}
