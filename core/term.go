package core

import (
	"reflect"

	"github.com/mitchellh/hashstructure"
)

// View is a plugin-specific tagged payload, opaque to the core: And(a,b),
// Plus(t,u), Leq(t,c), a numeral, a propositional atom's own wrapped name,
// and so on. The core never inspects a View; it only hash-conses it and
// hands it back to the owning plugin's operation table.
type View any

// Value is an assignment value. For Boolean terms it is always a Go bool;
// for semantic terms it is whatever the owning type's Decide/Eval produce.
// This is the "unified term_assignment" variant from spec §9 Open
// Question (b): one Value field serves both Boolean and theory terms.
type Value any

// Type is a plugin-defined sort's operation table (spec §6, "a type
// additionally provides").
type Type interface {
	Name() string
	// Decide picks a value for an unassigned semantic term of this type.
	// Never called for the built-in Boolean type — the core picks
	// Boolean polarity itself (spec §4.6).
	Decide(actions Actions, t *Term) Value
	// Eq returns a Boolean term representing t == u, or nil if this type
	// has no notion of equality.
	Eq(t, u *Term) *Term
	// MkState returns fresh plugin-defined decision state for a new
	// semantic variable of this type.
	MkState() any
	// Print renders t for diagnostics.
	Print(t *Term) string
}

// Term is the universal unit of reasoning (spec §3).
type Term struct {
	ID       TermID
	View     View
	Type     Type
	Activity float64
	HeapIdx  int // index into the decision heap's backing array, -1 if absent
	Flags    flags
	Var      Var

	Assigned bool
	Value    Value
	Level    int
	Reason   Reason

	// SavedPolarity is the Boolean value this term was most recently
	// assigned, consulted by decide instead of a hardcoded polarity
	// (spec §4.6 phase saving). Starts false, matching "initially false
	// for Boolean terms". Meaningless for non-Boolean terms.
	SavedPolarity bool

	// Watchers are other terms whose owning plugin asked to be notified
	// when this term becomes assigned (spec §3's "lazily-initialised
	// vector of watching terms").
	Watchers []*Term

	slot int // stable index into the owning Arena's dense term slice
}

func (t *Term) String() string {
	if t.Type != nil {
		return t.Type.Print(t)
	}
	return "<term>"
}

// HashInclude limits what a Term contributes to the hash of a View that
// embeds it (hashstructure's Includable hook) to its stable ID. The other
// fields lead back to the term itself (Var -> Atom -> Term), which the
// hasher would otherwise follow without end.
func (t Term) HashInclude(field string, _ interface{}) (bool, error) {
	return field == "ID", nil
}

func (t *Term) setFlag(f flags)      { t.Flags.set(f) }
func (t *Term) clearFlag(f flags)    { t.Flags.clear(f) }
func (t *Term) hasFlag(f flags) bool { return t.Flags.has(f) }

// IsBoolean reports whether t was created with the core's built-in
// Boolean type.
func (t *Term) IsBoolean() bool {
	_, ok := t.Type.(boolType)
	return ok
}

// Unassign clears a term's current assignment. Only ever called by the
// trail on backtrack.
func (t *Term) unassign() {
	t.Assigned = false
	t.Value = nil
	t.Level = -1
	t.Reason = nil
}

// watchKey identifies a hash-consing bucket: a plugin id plus a structural
// hash of the view it constructed.
type watchKey struct {
	plugin PluginID
	hash   uint64
}

// Arena owns stable storage and identity for all terms created during a
// solving session. Per spec §9, terms are never moved once created;
// deletion is deferred to garbage collection (restart.go's reduce pass).
type Arena struct {
	terms     []*Term
	nextLocal map[PluginID]uint32
	hashcons  map[watchKey][]*Term
	byID      map[TermID]*Term

	nextAtom AtomID
	atoms    []*Atom

	// onNewTerm, if set, is called exactly once for every term the arena
	// constructs (never for a hash-consing cache hit). The Solver wires
	// this to plugin registration (spec §6's "init(actions,t) called on
	// registration") without the arena needing to import Actions/Registry
	// itself.
	onNewTerm func(t *Term)
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{
		nextLocal: make(map[PluginID]uint32),
		hashcons:  make(map[watchKey][]*Term),
		byID:      make(map[TermID]*Term),
	}
}

// Terms returns the dense, stable-order slice of every term ever created
// in this arena, including ones since marked deleted. Callers that need
// only live terms should check IsDeleted.
func (a *Arena) Terms() []*Term {
	return a.terms
}

// MkTerm hash-conses view under plugin p: constructing the same view twice
// (by structural equality) yields the same *Term (spec §3, §9).
func (a *Arena) MkTerm(p PluginID, view View, typ Type) *Term {
	h, err := hashstructure.Hash(view, nil)
	if err != nil {
		// Views that can't be hashed (e.g. containing funcs) simply
		// never share: each call makes a fresh term.
		return a.newTerm(p, view, typ)
	}
	key := watchKey{plugin: p, hash: h}
	for _, cand := range a.hashcons[key] {
		if reflect.DeepEqual(cand.View, view) {
			return cand
		}
	}
	t := a.newTerm(p, view, typ)
	a.hashcons[key] = append(a.hashcons[key], t)
	return t
}

// Lookup returns the term previously registered with the given id, or nil.
func (a *Arena) Lookup(id TermID) *Term {
	return a.byID[id]
}

func (a *Arena) newTerm(p PluginID, view View, typ Type) *Term {
	local := a.nextLocal[p]
	a.nextLocal[p] = local + 1
	t := &Term{
		ID:      mkTermID(p, local),
		View:    view,
		Type:    typ,
		HeapIdx: -1,
		Level:   -1,
		Var:     NoVar{},
		slot:    len(a.terms),
	}
	a.terms = append(a.terms, t)
	a.byID[t.ID] = t
	if typ == BoolType {
		a.registerBoolean(t)
	}
	t.setFlag(flagIsAdded)
	if a.onNewTerm != nil {
		a.onNewTerm(t)
	}
	return t
}

// boolType is the core's built-in Boolean sort. Boolean terms never go
// through a plugin's Type — the core owns Boolean semantics directly.
type boolType struct{}

func (boolType) Name() string { return "Bool" }
func (boolType) Decide(Actions, *Term) Value {
	panic("core: Decide called on a Boolean term; the core assigns Boolean polarity directly")
}
func (boolType) Eq(t, u *Term) *Term { return nil }
func (boolType) MkState() any        { return nil }
func (boolType) Print(t *Term) string {
	if !t.Assigned {
		return "<bool?>"
	}
	b, _ := t.Value.(bool)
	if b {
		return "true"
	}
	return "false"
}

// BoolType is the singleton Boolean sort.
var BoolType Type = boolType{}
