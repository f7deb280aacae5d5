// Package boolean clausifies propositional connective terms the way a
// front-end over the core would: And/Or/Not/Ite views become Tseitin
// clauses pushed once, at term registration, rather than requiring every
// caller to hand the core pre-clausified CNF.
package boolean

import (
	"fmt"

	"github.com/operator-framework/mcsat-core/core"
)

// ID is this plugin's reserved id.
const ID core.PluginID = 1

// And is the view for a binary conjunction term.
type And struct{ A, B *core.Term }

// Or is the view for a binary disjunction term.
type Or struct{ A, B *core.Term }

// Not is the view for a negation term.
type Not struct{ A *core.Term }

// Ite is the view for an if-then-else term: if Cond then Then else Else.
type Ite struct{ Cond, Then, Else *core.Term }

// Plugin clausifies Boolean connective terms via Tseitin's transform
// (grounded on gini's logic/c.go addAnd, generalized to Or/Not/Ite).
type Plugin struct{}

// New returns the Boolean connective plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string     { return "boolean" }

// Init pushes the Tseitin clauses equating t's own atom with its view,
// the moment t is first registered (spec §4.1's "no implicit copying":
// clausification happens exactly once per hash-consed term).
func (p *Plugin) Init(actions core.Actions, t *Term) {
	g := t.Var.(core.BoolVar)
	switch v := t.View.(type) {
	case And:
		a, b := v.A.Var.(core.BoolVar), v.B.Var.(core.BoolVar)
		push3(actions, g.Neg.ID, a.Pos.ID)
		push3(actions, g.Neg.ID, b.Pos.ID)
		push3(actions, g.Pos.ID, a.Neg.ID, b.Neg.ID)
	case Or:
		a, b := v.A.Var.(core.BoolVar), v.B.Var.(core.BoolVar)
		push3(actions, g.Pos.ID, a.Neg.ID)
		push3(actions, g.Pos.ID, b.Neg.ID)
		push3(actions, g.Neg.ID, a.Pos.ID, b.Pos.ID)
	case Not:
		a := v.A.Var.(core.BoolVar)
		push3(actions, g.Neg.ID, a.Neg.ID)
		push3(actions, g.Pos.ID, a.Pos.ID)
	case Ite:
		c := v.Cond.Var.(core.BoolVar)
		th := v.Then.Var.(core.BoolVar)
		el := v.Else.Var.(core.BoolVar)
		push3(actions, g.Neg.ID, c.Neg.ID, th.Pos.ID)
		push3(actions, g.Neg.ID, c.Pos.ID, el.Pos.ID)
		push3(actions, g.Pos.ID, c.Neg.ID, th.Neg.ID)
		push3(actions, g.Pos.ID, c.Pos.ID, el.Neg.ID)
	}
}

func push3(actions core.Actions, ids ...core.AtomID) {
	actions.PushClause(core.MkClause(ids, core.Simplify{}))
}

// UpdateWatches is never invoked: this plugin only installs Boolean
// watches through the Tseitin clauses it pushes at Init, never a
// generalized watch.
func (p *Plugin) UpdateWatches(core.Actions, *Term, *Term) core.WatchAction {
	return core.WatchRemove
}

func (p *Plugin) Delete(*Term) {}

// Subterms yields each operand of a connective view.
func (p *Plugin) Subterms(view core.View, yield func(*Term)) {
	switch v := view.(type) {
	case And:
		yield(v.A)
		yield(v.B)
	case Or:
		yield(v.A)
		yield(v.B)
	case Not:
		yield(v.A)
	case Ite:
		yield(v.Cond)
		yield(v.Then)
		yield(v.Else)
	}
}

// Eval always returns Unknown: the Tseitin clauses already enforce the
// connective's semantics via ordinary BCP, so no shortcut evaluation is
// necessary for soundness.
func (p *Plugin) Eval(*Term) core.EvalResult { return core.Unknown }

func (p *Plugin) Print(t *Term) string {
	switch v := t.View.(type) {
	case And:
		return fmt.Sprintf("(%s & %s)", v.A, v.B)
	case Or:
		return fmt.Sprintf("(%s | %s)", v.A, v.B)
	case Not:
		return fmt.Sprintf("!%s", v.A)
	case Ite:
		return fmt.Sprintf("(if %s then %s else %s)", v.Cond, v.Then, v.Else)
	default:
		return "<boolean?>"
	}
}

// Term is a local alias so method signatures above read naturally without
// importing core.Term everywhere by its full path.
type Term = core.Term
