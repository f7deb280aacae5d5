package core

// Var is the closed set of term-decision variants from spec §3: a term is
// either bound to a pair of atoms (Boolean), carries plugin-defined
// decision state (a semantic/theory variable), or isn't registered for
// decision at all yet.
type Var interface {
	isVar()
}

// BoolVar binds a Boolean term to the pair of atoms the core allocated for
// it: pos is the term asserted true, neg is its negation.
type BoolVar struct {
	Pos, Neg *Atom
}

func (BoolVar) isVar() {}

// SemanticVar carries the plugin-defined state a theory uses to decide and
// track a non-Boolean term, e.g. a variable's current domain bounds.
type SemanticVar struct {
	DecideState any
}

func (SemanticVar) isVar() {}

// NoVar marks a term that has not (yet) been registered for decision.
type NoVar struct{}

func (NoVar) isVar() {}
