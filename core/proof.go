package core

import "github.com/pkg/errors"

// ErrProofMalformed is returned by proof traversal when a resolution
// step's pivot does not occur in both clauses being resolved (spec §7
// kind 5).
var ErrProofMalformed = errors.New("proof: resolution step pivot absent from a clause")

// Proof is the resolution DAG rooted at the empty clause a successful
// Unsat run produces (spec §6). Root is the final conflict's learned
// clause chain, ultimately reducing to the empty clause via Steps.
type Proof struct {
	Root *Clause
}

// ProofOf builds a Proof from the clause returned as a solver's final
// conflict at level 0.
func ProofOf(root *Clause) *Proof {
	return &Proof{Root: root}
}

// Walk visits every clause in the proof DAG exactly once, in an order
// where a clause is visited only after all clauses its own Premise
// depends on, calling visit(c) for each. It returns ErrProofMalformed if
// any Steps/RawSteps node's pivot is missing from the actual running
// resolvent at that point in the chain.
func (p *Proof) Walk(visit func(c *Clause)) error {
	visited := make(map[*Clause]bool)
	var walk func(c *Clause) error
	walk = func(c *Clause) error {
		if visited[c] {
			return nil
		}
		visited[c] = true
		switch pr := c.Premise.(type) {
		case Steps:
			if err := walk(pr.Init); err != nil {
				return err
			}
			cur := atomSet(pr.Init)
			for _, step := range pr.Steps {
				if err := walk(step.Other); err != nil {
					return err
				}
				next, err := resolveOn(cur, step.Other, step.Pivot)
				if err != nil {
					return err
				}
				cur = next
			}
		case RawSteps:
			if err := walk(pr.Init); err != nil {
				return err
			}
			cur := atomSet(pr.Init)
			for _, step := range pr.Chain {
				if err := walk(step.Other); err != nil {
					return err
				}
				next, err := resolveOn(cur, step.Other, step.Pivot)
				if err != nil {
					return err
				}
				cur = next
			}
		}
		visit(c)
		return nil
	}
	return walk(p.Root)
}

// atomSet returns c's atoms as a membership set, the starting point for
// tracking a Steps chain's accumulated resolvent.
func atomSet(c *Clause) map[AtomID]bool {
	s := make(map[AtomID]bool, len(c.Atoms))
	for _, id := range c.Atoms {
		s[id] = true
	}
	return s
}

// resolveOn resolves the running resolvent cur against other on pivot:
// cur must hold exactly one of pivot's two atoms and other must hold the
// opposite one (the actual precondition for a resolution step, spec
// §4.4), and the result is their union with both of pivot's atoms
// removed — the real accumulated resolvent, not a stand-in for it.
func resolveOn(cur map[AtomID]bool, other *Clause, pivot *Term) (map[AtomID]bool, error) {
	v, ok := pivot.Var.(BoolVar)
	if !ok {
		return nil, errors.Wrapf(ErrProofMalformed, "pivot %s is not a boolean term", pivot)
	}
	var otherHasPos, otherHasNeg bool
	for _, id := range other.Atoms {
		switch id {
		case v.Pos.ID:
			otherHasPos = true
		case v.Neg.ID:
			otherHasNeg = true
		}
	}
	if !((cur[v.Pos.ID] && otherHasNeg) || (cur[v.Neg.ID] && otherHasPos)) {
		return nil, errors.Wrapf(ErrProofMalformed, "pivot %s missing from the running resolvent or %s", pivot, other)
	}
	next := make(map[AtomID]bool, len(cur)+len(other.Atoms))
	for id := range cur {
		if id != v.Pos.ID && id != v.Neg.ID {
			next[id] = true
		}
	}
	for _, id := range other.Atoms {
		if id != v.Pos.ID && id != v.Neg.ID {
			next[id] = true
		}
	}
	return next, nil
}

// ReducesToEmpty reports whether the proof's root clause has zero atoms,
// i.e. resolution actually reached the empty clause (spec §8 "completeness
// under theories").
func (p *Proof) ReducesToEmpty() bool {
	return p.Root != nil && p.Root.Len() == 0
}
