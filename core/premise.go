package core

// Premise justifies a clause's presence (spec §3). The set of variants is
// closed within this package, mirroring the closed Var sum type.
type Premise interface {
	isPremise()
}

// Hyp marks a user-supplied hypothesis clause.
type Hyp struct{}

func (Hyp) isPremise() {}

// Local marks a one-atom clause representing a pushed assumption.
type Local struct{}

func (Local) isPremise() {}

// LemmaPayload is a plugin-supplied proof object backing a theory
// tautology. The core treats it as opaque.
type LemmaPayload any

// Lemma marks a theory tautology, carrying the plugin's proof payload.
type Lemma struct {
	L LemmaPayload
}

func (Lemma) isPremise() {}

// Simplify marks the result of deduplicating/sorting another clause.
type Simplify struct {
	Of *Clause
}

func (Simplify) isPremise() {}

// ResolutionStep names one resolution step: resolve the clause under
// construction against Other, pivoting on Pivot.
type ResolutionStep struct {
	Other *Clause
	Pivot *Term
}

// Steps records a simplified chain of resolution steps: the clause is the
// result of resolving Init through Steps in order.
type Steps struct {
	Init  *Clause
	Steps []ResolutionStep
}

func (Steps) isPremise() {}

// RawStep is one link of an unsimplified resolution chain, before proof
// post-processing rewrites it into Steps.
type RawStep struct {
	Other *Clause
	Pivot *Term
}

// RawSteps is an unsimplified resolution chain.
type RawSteps struct {
	Init  *Clause
	Chain []RawStep
}

func (RawSteps) isPremise() {}
