package core

// WatchAction is returned by a plugin's UpdateWatches to tell the core
// whether to keep the generalized watch in place or drop it (spec §4.3).
type WatchAction int

const (
	WatchKeep WatchAction = iota
	WatchRemove
)

// EvalResult is the outcome of a plugin's Eval (spec §6): either Unknown,
// or Into a value together with the terms whose current assignments
// caused the evaluation (used to justify an Eval reason during conflict
// analysis, spec §4.4).
type EvalResult struct {
	Known bool
	Value Value
	Used  []*Term
}

// Unknown is the zero EvalResult.
var Unknown = EvalResult{}

// Into builds a known EvalResult.
func Into(v Value, used ...*Term) EvalResult {
	return EvalResult{Known: true, Value: v, Used: used}
}

// Plugin is the extension point a theory implements (spec §6).
type Plugin interface {
	ID() PluginID
	Name() string

	// Init is called once, when t is first registered with the core.
	Init(actions Actions, t *Term)

	// UpdateWatches is invoked when watch becomes assigned and t
	// previously registered a generalized watch on it (spec §4.3).
	UpdateWatches(actions Actions, t *Term, watch *Term) WatchAction

	// Delete is called during GC sweep for every term this plugin owns
	// that turned out to be unreachable.
	Delete(t *Term)

	// Subterms calls yield once per immediate subterm of view.
	Subterms(view View, yield func(*Term))

	// Eval attempts to compute t's value purely from the current
	// assignment of its subterms, without search.
	Eval(t *Term) EvalResult

	// Print renders a term owned by this plugin for diagnostics.
	Print(t *Term) string
}

// Actions is the interface plugins use to affect the trail. Plugins never
// mutate the trail directly (spec §4.5).
type Actions interface {
	PushClause(c *Clause)
	PropagateBoolEval(t *Term, b bool, used []*Term)
	PropagateBoolLemma(t *Term, b bool, others []AtomID, lemma LemmaPayload)
	RaiseConflict(atoms []AtomID, lemma LemmaPayload)
	OnBacktrack(f func())
	CurrentLevel() int

	// Watch registers a generalized watch: the owning plugin (the term
	// the Actions was obtained for) is notified via UpdateWatches the
	// next time u becomes assigned (spec §4.3). Not part of the
	// original action table; added because no other action lets a
	// plugin arm a generalized watch on a term it does not own.
	Watch(u *Term)
}

// Registry holds every plugin and type (sort) known to a solving session
// (spec §2, "Plugin registry").
type Registry struct {
	plugins map[PluginID]Plugin
	types   map[string]Type
}

// NewRegistry returns an empty Registry. The Boolean type is always
// present under the name "Bool".
func NewRegistry() *Registry {
	r := &Registry{
		plugins: make(map[PluginID]Plugin),
		types:   make(map[string]Type),
	}
	r.types[BoolType.Name()] = BoolType
	return r
}

// Register adds a plugin to the registry. It panics if another plugin is
// already registered under the same id — plugin ids must be assigned
// uniquely by the embedder.
func (r *Registry) Register(p Plugin) {
	if _, ok := r.plugins[p.ID()]; ok {
		panic("core: duplicate plugin id " + p.Name())
	}
	r.plugins[p.ID()] = p
}

// RegisterType adds a sort to the registry under its own name.
func (r *Registry) RegisterType(t Type) {
	r.types[t.Name()] = t
}

// Plugin returns the plugin registered under id, or nil.
func (r *Registry) Plugin(id PluginID) Plugin {
	return r.plugins[id]
}

// PluginOf returns the plugin that owns t, or nil for core-owned Boolean
// terms.
func (r *Registry) PluginOf(t *Term) Plugin {
	return r.plugins[t.ID.Plugin()]
}

// Type returns the sort registered under name, or nil.
func (r *Registry) Type(name string) Type {
	return r.types[name]
}
