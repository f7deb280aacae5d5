package core

import "github.com/operator-framework/mcsat-core/internal/invariant"

// Trail is the totally ordered sequence of current assignments, with
// decision-level boundaries (spec §4.2).
type Trail struct {
	seq          []*Term
	levelOffsets []int // levelOffsets[L] = index in seq where level L starts
	level        int

	hooks map[int][]func()
}

// NewTrail returns an empty Trail at level 0.
func NewTrail() *Trail {
	return &Trail{
		levelOffsets: []int{0},
		hooks:        make(map[int][]func()),
	}
}

// Level returns the current decision level.
func (tr *Trail) Level() int { return tr.level }

// Len returns the number of assignments currently on the trail.
func (tr *Trail) Len() int { return len(tr.seq) }

// At returns the i-th assigned term, in trail order.
func (tr *Trail) At(i int) *Term { return tr.seq[i] }

// Slice returns the full trail, in assignment order. Callers must not
// mutate the returned slice.
func (tr *Trail) Slice() []*Term { return tr.seq }

// Assign pushes t onto the trail at the current level with the given
// value and reason. It does not change the level — use Decide for a new
// decision.
func (tr *Trail) Assign(t *Term, value Value, reason Reason) {
	invariant.Check(!t.Assigned, "assigning already-assigned term %s", t)
	t.Assigned = true
	t.Value = value
	t.Level = tr.level
	t.Reason = reason
	if t.IsBoolean() {
		if b, ok := value.(bool); ok {
			t.SavedPolarity = b
		}
	}
	tr.seq = append(tr.seq, t)
}

// Decide opens a new decision level and assigns t at it with reason
// Decision (spec §4.8).
func (tr *Trail) Decide(t *Term, value Value) {
	tr.Push(t, value, Decision{})
}

// Push opens a new decision level and assigns t at it with an arbitrary
// reason. Used for assumption literals (spec §6), which occupy their own
// level without being a search Decision.
func (tr *Trail) Push(t *Term, value Value, reason Reason) {
	tr.level++
	tr.levelOffsets = append(tr.levelOffsets, len(tr.seq))
	tr.Assign(t, value, reason)
}

// OnBacktrack schedules f to run the next time the trail backtracks past
// the current level (spec §4.5, §5: hooks for the same level fire LIFO).
func (tr *Trail) OnBacktrack(f func()) {
	tr.hooks[tr.level] = append(tr.hooks[tr.level], f)
}

// BacktrackTo truncates the trail to decision level L, unassigning every
// term assigned at a level > L and running backtrack hooks registered at
// levels > L, highest level first and, within a level, most-recently
// registered first (spec §4.2, §5).
func (tr *Trail) BacktrackTo(L int) {
	invariant.Check(L <= tr.level, "backtrack to %d above current level %d", L, tr.level)
	if L == tr.level {
		return
	}
	for lvl := tr.level; lvl > L; lvl-- {
		hooks := tr.hooks[lvl]
		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i]()
		}
		delete(tr.hooks, lvl)
	}
	cut := tr.levelOffsets[L+1]
	for i := len(tr.seq) - 1; i >= cut; i-- {
		tr.seq[i].unassign()
	}
	tr.seq = tr.seq[:cut]
	tr.levelOffsets = tr.levelOffsets[:L+1]
	tr.level = L
}

// LevelStart returns the trail index at which level L begins.
func (tr *Trail) LevelStart(L int) int {
	if L >= len(tr.levelOffsets) {
		return len(tr.seq)
	}
	return tr.levelOffsets[L]
}
