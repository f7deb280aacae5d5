// Package uf is a minimal uninterpreted-sort theory: free constants,
// function applications, and an Equal atom that merges two terms'
// equivalence classes once asserted true. Per spec §1's Non-goals this
// is not a full congruence closure (it does not propagate equalities
// forward from merged arguments) — it exists to exercise Type.Eq and a
// term watching its own assignment.
package uf

import (
	"fmt"

	"github.com/operator-framework/mcsat-core/core"
)

// ID is this plugin's reserved id.
const ID core.PluginID = 3

// Const is a free uninterpreted constant view, identified by name.
type Const struct{ Name string }

// App is an uninterpreted function application view.
type App struct {
	Func string
	Args []*core.Term
}

// Equal is a Boolean-typed view: A == B, produced by UFType.Eq.
type Equal struct{ A, B *core.Term }

// UFType is the uninterpreted sort Const/App terms carry.
type UFType struct {
	arena  *core.Arena
	plugin *Plugin
}

func (t *UFType) Name() string { return "UF" }

// Decide assigns an unconstrained term its own equivalence-class
// representative id, so distinct terms default to distinct values unless
// something has merged them (the standard free-model default).
func (t *UFType) Decide(_ core.Actions, term *core.Term) core.Value {
	return t.plugin.find(term.ID)
}

// Eq returns the (hash-consed) Boolean term representing t == u,
// creating it on first request.
func (t *UFType) Eq(a, b *core.Term) *core.Term {
	if a.ID > b.ID {
		a, b = b, a
	}
	return t.arena.MkTerm(ID, Equal{A: a, B: b}, core.BoolType)
}

func (t *UFType) MkState() any { return nil }

func (t *UFType) Print(term *core.Term) string {
	switch v := term.View.(type) {
	case Const:
		return v.Name
	case App:
		return fmt.Sprintf("%s(...)", v.Func)
	default:
		return "<uf?>"
	}
}

// Plugin owns Const/App terms, Equal atoms, and the union-find tracking
// which terms have been merged by an asserted equality.
type Plugin struct {
	typ    *UFType
	parent map[core.TermID]core.TermID
}

// New returns the uninterpreted-sort plugin, bound to arena so its Type's
// Eq can construct Equal terms.
func New(arena *core.Arena) *Plugin {
	p := &Plugin{parent: make(map[core.TermID]core.TermID)}
	p.typ = &UFType{arena: arena, plugin: p}
	return p
}

// Type returns the UF sort this plugin's Const/App terms carry.
func (p *Plugin) Type() core.Type { return p.typ }

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string     { return "uf" }

func (p *Plugin) find(id core.TermID) core.TermID {
	r, ok := p.parent[id]
	if !ok {
		return id
	}
	if r == id {
		return id
	}
	return p.find(r)
}

// union merges b's equivalence class into a's and reports exactly what
// is needed to undo it later: the root that represented b's class
// before the merge (rootOfB, the map key that was overwritten), and
// whatever that key mapped to before (hadEntry distinguishes "rootOfB
// had no parent at all", since a find miss and a stored value of zero
// are otherwise indistinguishable in a core.TermID-valued map).
func (p *Plugin) union(a, b core.TermID) (rootOfB core.TermID, hadEntry bool, prevParent core.TermID, merged bool) {
	ra, rb := p.find(a), p.find(b)
	if ra == rb {
		return 0, false, 0, false
	}
	prevParent, hadEntry = p.parent[rb]
	p.parent[rb] = ra
	return rb, hadEntry, prevParent, true
}

// Init arms an Equal term to watch its own assignment (a term may watch
// itself: the core's generalized watch vector is keyed by the watched
// term, not the watcher's identity), so the plugin learns the moment its
// truth value is fixed, by decision or BCP alike.
func (p *Plugin) Init(actions core.Actions, t *core.Term) {
	if _, ok := t.View.(Equal); ok {
		actions.Watch(t)
	}
}

// UpdateWatches merges the two operands' equivalence classes once an
// Equal term is asserted true, registering an OnBacktrack hook that
// undoes exactly that merge.
func (p *Plugin) UpdateWatches(actions core.Actions, t, _ *core.Term) core.WatchAction {
	v, ok := t.View.(Equal)
	if !ok || !t.Assigned {
		return core.WatchKeep
	}
	b, _ := t.Value.(bool)
	if !b {
		return core.WatchKeep
	}
	rootOfB, hadEntry, prevParent, merged := p.union(v.A.ID, v.B.ID)
	if merged {
		actions.OnBacktrack(func() {
			if hadEntry {
				p.parent[rootOfB] = prevParent
			} else {
				delete(p.parent, rootOfB)
			}
		})
	}
	return core.WatchKeep
}

func (p *Plugin) Delete(t *core.Term) {
	delete(p.parent, t.ID)
}

func (p *Plugin) Subterms(view core.View, yield func(*core.Term)) {
	switch v := view.(type) {
	case App:
		for _, a := range v.Args {
			yield(a)
		}
	case Equal:
		yield(v.A)
		yield(v.B)
	}
}

// Eval reports an Equal term's value once both operands are assigned, by
// comparing their equivalence-class representatives.
func (p *Plugin) Eval(t *core.Term) core.EvalResult {
	v, ok := t.View.(Equal)
	if !ok || !v.A.Assigned || !v.B.Assigned {
		return core.Unknown
	}
	return core.Into(p.find(v.A.ID) == p.find(v.B.ID), v.A, v.B)
}

func (p *Plugin) Print(t *core.Term) string {
	if v, ok := t.View.(Equal); ok {
		return fmt.Sprintf("(%s = %s)", v.A, v.B)
	}
	return p.typ.Print(t)
}
