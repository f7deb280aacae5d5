package core

import (
	"sort"
	"strconv"
)

type cflags uint8

const (
	cAttached cflags = 1 << iota
	cVisited
	cDeleted
	cGCMarked
)

// Clause is a disjunction of atoms with a justification (spec §3).
type Clause struct {
	Atoms    []AtomID
	Name     string
	Tag      any
	Activity float64
	Premise  Premise

	flags cflags

	// watch0, watch1 are the indices into Atoms of the two watched
	// literals (spec invariant 2). Meaningless for clauses with fewer
	// than two atoms.
	watch0, watch1 int
}

var clauseSeq int

// mkClauseName returns a fresh, human-readable clause name in the style
// OLM's solver names Installables: sequential and stable within a run.
func mkClauseName() string {
	clauseSeq++
	return "c" + strconv.Itoa(clauseSeq)
}

// MkClause builds a new clause from atoms with the given premise. Atoms is
// copied, never aliased. If premise is a Simplify, the copy is
// deduplicated and sorted by AtomID (spec §4.1).
func MkClause(atoms []AtomID, premise Premise) *Clause {
	cp := make([]AtomID, len(atoms))
	copy(cp, atoms)
	if _, ok := premise.(Simplify); ok {
		cp = dedupSorted(cp)
	}
	return &Clause{
		Atoms:   cp,
		Name:    mkClauseName(),
		Premise: premise,
		watch0:  0,
		watch1:  1,
	}
}

func dedupSorted(atoms []AtomID) []AtomID {
	sort.Slice(atoms, func(i, j int) bool { return atoms[i] < atoms[j] })
	out := atoms[:0]
	var last AtomID
	have := false
	for _, a := range atoms {
		if have && a == last {
			continue
		}
		out = append(out, a)
		last, have = a, true
	}
	return out
}

func (c *Clause) String() string {
	return c.Name
}

func (c *Clause) Len() int { return len(c.Atoms) }

func (c *Clause) IsAttached() bool { return c.flags&cAttached != 0 }
func (c *Clause) IsDeleted() bool  { return c.flags&cDeleted != 0 }

// WatchedAtoms returns the two atom ids currently watched by c. Only
// meaningful when c.Len() >= 2.
func (c *Clause) WatchedAtoms() (AtomID, AtomID) {
	return c.Atoms[c.watch0], c.Atoms[c.watch1]
}

// pickWatches partitions c.Atoms in place so that non-false atoms come
// first, and sets watch0/watch1 to 0/1. It returns the number of non-false
// atoms found, capped at 2: 0 means every atom is false (conflict), 1
// means exactly one atom is not false (unit), 2 means the clause has at
// least two atoms that aren't currently false.
func (c *Clause) pickWatches(arena *Arena) int {
	n := len(c.Atoms)
	w := 0
	for i := 0; i < n && w < 2; i++ {
		if !arena.AtomByID(c.Atoms[i]).IsFalse() {
			c.Atoms[w], c.Atoms[i] = c.Atoms[i], c.Atoms[w]
			w++
		}
	}
	c.watch0, c.watch1 = 0, 1
	return w
}

// detach removes c from the watch vectors of its two watched atoms.
func (c *Clause) detach(arena *Arena) {
	if c.flags&cAttached == 0 {
		return
	}
	if len(c.Atoms) >= 2 {
		a0 := arena.AtomByID(c.Atoms[c.watch0])
		a1 := arena.AtomByID(c.Atoms[c.watch1])
		removeClauseFrom(a0, c)
		removeClauseFrom(a1, c)
	}
	c.flags &^= cAttached
}

func removeClauseFrom(a *Atom, c *Clause) {
	for i, w := range a.WatchedBy {
		if w == c {
			last := len(a.WatchedBy) - 1
			a.WatchedBy[i] = a.WatchedBy[last]
			a.WatchedBy = a.WatchedBy[:last]
			return
		}
	}
}

// rewatch swaps the atom at index newIdx into watch slot slot, moving c
// from the old atom's WatchedBy vector to the new one's. Used by the
// watch engine when a clause's watched atom becomes false and must be
// replaced (spec §4.3).
func (c *Clause) rewatch(arena *Arena, slot int, newIdx int) {
	oldAtomID := c.Atoms[slot]
	c.Atoms[slot], c.Atoms[newIdx] = c.Atoms[newIdx], c.Atoms[slot]
	oldAtom := arena.AtomByID(oldAtomID)
	removeClauseFrom(oldAtom, c)
	newAtom := arena.AtomByID(c.Atoms[slot])
	newAtom.WatchedBy = append(newAtom.WatchedBy, c)
}
