// Package lra is a minimal linear real arithmetic theory: numerals, free
// real variables, and a Leq comparison atom that propagates once both of
// its operands are assigned. Per spec §1's Non-goals, it deliberately
// does not implement a real simplex/interval decision procedure — it
// exists to exercise the plugin contract (generalized watches, Eval,
// semantic Decide) with real semantic terms.
package lra

import (
	"fmt"

	"github.com/operator-framework/mcsat-core/core"
)

// ID is this plugin's reserved id.
const ID core.PluginID = 2

// Num is a real numeral view.
type Num struct{ Value float64 }

// Var is a free real variable view, identified by name so repeated
// MkTerm calls for the same name hash-cons to one term.
type Var struct{ Name string }

// Leq is a Boolean-typed view: A <= B.
type Leq struct{ A, B *core.Term }

// RealType is the sort of numerals and free variables.
type RealType struct{}

func (RealType) Name() string { return "Real" }

// Decide returns a numeral's own fixed value, or 0 for an unconstrained
// free variable — the smallest value consistent with the absence of a
// real interval solver.
func (RealType) Decide(_ core.Actions, t *core.Term) core.Value {
	if n, ok := t.View.(Num); ok {
		return n.Value
	}
	return 0.0
}

func (RealType) Eq(t, u *core.Term) *core.Term { return nil }
func (RealType) MkState() any                  { return nil }

func (RealType) Print(t *core.Term) string {
	switch v := t.View.(type) {
	case Num:
		return fmt.Sprintf("%g", v.Value)
	case Var:
		return v.Name
	default:
		if t.Assigned {
			f, _ := t.Value.(float64)
			return fmt.Sprintf("%g", f)
		}
		return "<real?>"
	}
}

// Plugin owns Num/Var real terms and Leq comparison atoms.
type Plugin struct {
	typ RealType
}

// New returns the linear real arithmetic plugin.
func New() *Plugin { return &Plugin{} }

// Type returns the Real sort this plugin's Num/Var terms carry.
func (p *Plugin) Type() core.Type { return p.typ }

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string     { return "lra" }

// Init arms generalized watches on both operands of a Leq term so it's
// notified the moment either becomes assigned (spec §4.3).
func (p *Plugin) Init(actions core.Actions, t *core.Term) {
	if v, ok := t.View.(Leq); ok {
		actions.Watch(v.A)
		actions.Watch(v.B)
	}
}

// UpdateWatches re-checks a Leq term's comparison once both operands are
// assigned, propagating its truth value with reason Eval(A, B).
func (p *Plugin) UpdateWatches(actions core.Actions, t, _ *core.Term) core.WatchAction {
	v, ok := t.View.(Leq)
	if !ok || !v.A.Assigned || !v.B.Assigned {
		return core.WatchKeep
	}
	a, _ := v.A.Value.(float64)
	b, _ := v.B.Value.(float64)
	actions.PropagateBoolEval(t, a <= b, []*core.Term{v.A, v.B})
	return core.WatchKeep
}

func (p *Plugin) Delete(*core.Term) {}

func (p *Plugin) Subterms(view core.View, yield func(*core.Term)) {
	if v, ok := view.(Leq); ok {
		yield(v.A)
		yield(v.B)
	}
}

// Eval computes a Leq term's value purely from its operands' current
// assignment. The core does not call Eval during solving; propagation
// goes through UpdateWatches, which makes the same comparison.
func (p *Plugin) Eval(t *core.Term) core.EvalResult {
	v, ok := t.View.(Leq)
	if !ok || !v.A.Assigned || !v.B.Assigned {
		return core.Unknown
	}
	a, _ := v.A.Value.(float64)
	b, _ := v.B.Value.(float64)
	return core.Into(a <= b, v.A, v.B)
}

func (p *Plugin) Print(t *core.Term) string {
	v, ok := t.View.(Leq)
	if !ok {
		return p.typ.Print(t)
	}
	return fmt.Sprintf("(%s <= %s)", v.A, v.B)
}
