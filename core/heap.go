package core

// activityHeap is a binary max-heap over terms keyed by Term.Activity
// (spec §4.6). Bumping a term's activity while it's in the heap
// percolates it up in place; popping removes and returns the
// highest-activity term.
type activityHeap struct {
	a []*Term
}

func newActivityHeap() *activityHeap {
	return &activityHeap{}
}

func (h *activityHeap) Len() int { return len(h.a) }

// touch ensures t has an entry in the heap, unless it's already present,
// already assigned, or has been deleted by GC.
func (h *activityHeap) touch(t *Term) {
	if t.HeapIdx >= 0 || t.Assigned || t.hasFlag(flagIsDeleted) {
		return
	}
	h.push(t)
}

func (h *activityHeap) push(t *Term) {
	t.HeapIdx = len(h.a)
	h.a = append(h.a, t)
	h.up(t.HeapIdx)
}

// pop removes and returns the highest-activity term still in the heap.
func (h *activityHeap) pop() *Term {
	if len(h.a) == 0 {
		return nil
	}
	top := h.a[0]
	last := len(h.a) - 1
	h.a[0] = h.a[last]
	h.a[0].HeapIdx = 0
	h.a = h.a[:last]
	top.HeapIdx = -1
	if len(h.a) > 0 {
		h.down(0)
	}
	return top
}

// bump raises t's activity by inc and fixes its heap position. If t
// isn't in the heap (e.g. already assigned), only its activity changes.
func (h *activityHeap) bump(t *Term, inc float64) {
	t.Activity += inc
	if t.HeapIdx >= 0 {
		h.up(t.HeapIdx)
	}
}

// rescale multiplies the activity of every term in terms by 1e-100. Every
// term is scaled by the same factor, so the heap order is unchanged.
func (h *activityHeap) rescale(terms []*Term) {
	for _, t := range terms {
		t.Activity *= 1e-100
	}
}

func (h *activityHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.a[parent].Activity >= h.a[i].Activity {
			break
		}
		h.swap(parent, i)
		i = parent
	}
}

func (h *activityHeap) down(i int) {
	n := len(h.a)
	for {
		l, r := 2*i+1, 2*i+2
		largest := i
		if l < n && h.a[l].Activity > h.a[largest].Activity {
			largest = l
		}
		if r < n && h.a[r].Activity > h.a[largest].Activity {
			largest = r
		}
		if largest == i {
			break
		}
		h.swap(i, largest)
		i = largest
	}
}

func (h *activityHeap) swap(i, j int) {
	h.a[i], h.a[j] = h.a[j], h.a[i]
	h.a[i].HeapIdx = i
	h.a[j].HeapIdx = j
}

// remove drops t from the heap without returning it, used when a term is
// deleted by GC while still a decision candidate.
func (h *activityHeap) remove(t *Term) {
	if t.HeapIdx < 0 {
		return
	}
	i := t.HeapIdx
	last := len(h.a) - 1
	h.swap(i, last)
	h.a = h.a[:last]
	t.HeapIdx = -1
	if i < len(h.a) {
		h.up(i)
		h.down(i)
	}
}

// bumpVar bumps t's activity by the solver's current (decay-grown)
// variable activity increment and rescales everything if it would
// overflow (spec §4.6: "when it exceeds 10^100, all activities and the
// increment are rescaled by 10^-100").
func (s *Solver) bumpVar(t *Term) {
	s.heap.bump(t, s.varInc)
	if t.Activity > 1e100 {
		s.heap.rescale(s.arena.terms)
		s.varInc *= 1e-100
	}
}

// decayVarInc grows the variable activity increment, called once per
// conflict (spec §4.6).
func (s *Solver) decayVarInc() {
	s.varInc *= 1.0 / s.tuning.VarDecay
}

// bumpClauseActivity bumps a learned clause's activity on involvement in
// conflict analysis (spec §4.7).
func (s *Solver) bumpClauseActivity(c *Clause) {
	if _, ok := c.Premise.(Hyp); ok {
		return
	}
	c.Activity += s.clauseInc
	if c.Activity > 1e100 {
		for _, lc := range s.learned {
			lc.Activity *= 1e-100
		}
		s.clauseInc *= 1e-100
	}
}

// decayClauseInc grows the clause activity increment, called once per
// conflict (spec §4.7).
func (s *Solver) decayClauseInc() {
	s.clauseInc *= 1.0 / s.tuning.ClauseDecay
}
