package core

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// State is the driver's top-level state (spec §4.8).
type State int

const (
	Idle State = iota
	Solving
	Sat
	Unsat
)

func (st State) String() string {
	switch st {
	case Idle:
		return "Idle"
	case Solving:
		return "Solving"
	case Sat:
		return "Sat"
	case Unsat:
		return "Unsat"
	default:
		return "Unknown"
	}
}

// ErrUnsatAtLevelZero is returned by Solve when the derived conflict
// cannot be backtracked past (spec §7 kind 1).
var ErrUnsatAtLevelZero = errors.New("unsat at level 0")

// ErrIncomplete is returned by Solve when a deadline/interrupt fires
// before a result was found (spec §7 kind 4). The solver instance remains
// valid and may be re-entered.
var ErrIncomplete = errors.New("interrupted before a result could be found")

// Solver is the top-level driver: term/atom/clause storage, trail, watch
// engine, decision heap, and restart/reduction policy (spec §2, §4.8).
type Solver struct {
	arena    *Arena
	registry *Registry
	trail    *Trail
	queue    queue
	conflict *Conflict

	clauses []*Clause // every attached clause, in addition order
	learned []*Clause // subset of clauses that were learned, not hypotheses

	assumeAtoms   []AtomID // currently pushed assumption atoms, in push order
	assumeClauses []*Clause
	// assumeLevels[i] is the trail level to backtrack to in order to undo
	// assumeAtoms[i] and everything implied after it — the trail level
	// as it stood immediately before that assumption was pushed. Not
	// always i itself: a pushed assumption opens a new trail level only
	// if its atom was unassigned at push time (see PushAssumption).
	assumeLevels []int

	heap *activityHeap

	tuning  Tuning
	restart restartState

	varInc     float64
	clauseInc  float64
	reduceCap  int
	conflictsN int64
	reductions int

	state         State
	log           *logrus.Entry
	result        []AppliedFact // last Sat model
	finalConflict *Clause       // Unsat proof root, the clause conflicting at level 0
}

// FinalConflict returns the level-0 conflict clause that proved Unsat, or
// nil if the solver has not returned Unsat.
func (s *Solver) FinalConflict() *Clause { return s.finalConflict }

// AppliedFact is one entry of a produced model: a term together with the
// value the solver assigned it.
type AppliedFact struct {
	Term  *Term
	Value Value
}

// New creates a Solver with an empty arena and registry, ready to accept
// plugins and clauses.
func New(opts ...Option) *Solver {
	s := &Solver{
		arena:     NewArena(),
		registry:  NewRegistry(),
		trail:     NewTrail(),
		tuning:    DefaultTuning(),
		varInc:    1,
		clauseInc: 1,
		log:       logrus.StandardLogger().WithField("component", "mcsat-core"),
	}
	s.heap = newActivityHeap()
	s.arena.onNewTerm = s.initTerm
	for _, o := range opts {
		o(s)
	}
	s.restart = newRestartState(s.tuning)
	s.reduceCap = s.tuning.InitialReduceCap
	return s
}

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithTuning overrides the default search tuning parameters.
func WithTuning(t Tuning) Option {
	return func(s *Solver) { s.tuning = t }
}

// WithLogger overrides the default logrus entry used for diagnostics.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Solver) { s.log = l }
}

// Registry exposes the plugin/type registry so callers can register
// plugins before adding clauses.
func (s *Solver) Registry() *Registry { return s.registry }

// Arena exposes the term arena so callers/plugins can create terms.
func (s *Solver) Arena() *Arena { return s.arena }

// MkBoolTerm hash-conses a Boolean-typed term owned by plugin p.
func (s *Solver) MkBoolTerm(p PluginID, view View) *Term {
	return s.arena.MkTerm(p, view, BoolType)
}

// MkTerm hash-conses a term of the given (non-Boolean) type, owned by
// plugin p.
func (s *Solver) MkTerm(p PluginID, view View, typ Type) *Term {
	return s.arena.MkTerm(p, view, typ)
}

// initTerm calls the owning plugin's Init exactly once per freshly
// hash-consed term (spec §6: "init(actions,t) called on registration").
// Wired as the arena's onNewTerm hook so it fires regardless of whether
// the term was created through the Solver or directly by a plugin's Type
// (e.g. Eq constructing a fresh equality term).
func (s *Solver) initTerm(t *Term) {
	// Every term must be reachable from the decision heap to ever get a
	// value: Boolean literal terms are also touched when a clause
	// mentioning them attaches, but semantic (non-Boolean) terms like a
	// Leq's real-valued operands have no clause atom of their own and
	// would otherwise never be decided.
	s.heap.touch(t)
	if !t.IsBoolean() {
		t.Var = SemanticVar{DecideState: t.Type.MkState()}
	}
	p := s.registry.PluginOf(t)
	if p == nil {
		return
	}
	p.Init(s.actionsFor(t), t)
}

// AddClause adds a hypothesis clause at level 0 (spec §6 "add clause").
// atoms must reference terms already created via MkTerm/MkBoolTerm.
func (s *Solver) AddClause(atoms []AtomID, tag any) error {
	if s.trail.Level() != 0 {
		panic("core: AddClause called above level 0; pop assumptions first")
	}
	c := MkClause(atoms, Hyp{})
	c.Tag = tag
	return s.addAndAttach(c, true)
}

func (s *Solver) addAndAttach(c *Clause, isHyp bool) error {
	s.clauses = append(s.clauses, c)
	if !isHyp && isConflictLearned(c) {
		s.learned = append(s.learned, c)
	}
	for _, id := range c.Atoms {
		s.heap.touch(s.arena.AtomByID(id).Term)
	}
	if conf := s.attachClause(c); conf != nil {
		s.conflict = conf
	}
	if fx := s.propagate(); fx != nil {
		s.conflict = fx
	}
	if s.conflict != nil && s.trail.Level() == 0 {
		finalConf := s.conflict
		s.conflict = nil
		s.state = Unsat
		s.finalConflict = s.analyzeEmpty(finalConf)
		return errors.Wrap(ErrUnsatAtLevelZero, c.Name)
	}
	return nil
}

// isConflictLearned reports whether c is a genuine 1-UIP conflict clause
// eligible for reduceDB's activity-based pruning, as opposed to a
// structural clause a plugin pushed at term registration (e.g. a Tseitin
// definition): those must survive for as long as the term they define
// does, never by activity (spec §4.7 reduction applies to the *learned*
// database, not to a theory's defining clauses).
func isConflictLearned(c *Clause) bool {
	switch c.Premise.(type) {
	case Steps, RawSteps:
		return true
	default:
		return false
	}
}

// PushAssumption pushes a one-atom local assumption (spec §6). It opens
// its own decision level so PopAssumption can undo exactly it and
// everything implied after it — except when the atom is already true
// (a level-0 root fact, or one implied by an earlier assumption), in
// which case no new level is needed; PopAssumption tracks which case
// applied per-push rather than assuming one trail level per assumption.
func (s *Solver) PushAssumption(a AtomID) error {
	c := MkClause([]AtomID{a}, Local{})
	s.assumeAtoms = append(s.assumeAtoms, a)
	s.assumeClauses = append(s.assumeClauses, c)
	s.assumeLevels = append(s.assumeLevels, s.trail.Level())
	s.clauses = append(s.clauses, c)
	atom := s.arena.AtomByID(a)
	if atom.IsFalse() {
		s.conflict = &Conflict{Clause: c}
		return nil
	}
	if atom.IsUnassigned() {
		s.trail.Push(atom.Term, !atom.Neg, Root{Clause: c})
		s.queue.push(atom.Term)
		if conf := s.propagate(); conf != nil {
			s.conflict = conf
		}
	}
	c.flags |= cAttached
	return nil
}

// PopAssumption removes the most recently pushed assumption and
// backtracks to the trail level recorded when it was pushed, undoing it
// (if it opened a level at all) and everything implied after it.
func (s *Solver) PopAssumption() {
	n := len(s.assumeAtoms)
	if n == 0 {
		return
	}
	c := s.assumeClauses[n-1]
	target := s.assumeLevels[n-1]
	c.detach(s.arena)
	s.assumeAtoms = s.assumeAtoms[:n-1]
	s.assumeClauses = s.assumeClauses[:n-1]
	s.assumeLevels = s.assumeLevels[:n-1]
	for i, cc := range s.clauses {
		if cc == c {
			s.clauses = append(s.clauses[:i], s.clauses[i+1:]...)
			break
		}
	}
	s.trail.BacktrackTo(target)
	s.conflict = nil
	s.queue.reset()
	s.resyncHeap()
	if s.state == Unsat {
		s.state = Solving
	}
}

// Value returns the current value of t and whether it is assigned.
func (s *Solver) Value(t *Term) (Value, bool) {
	return t.Value, t.Assigned
}

// Model returns the last produced Sat model.
func (s *Solver) Model() []AppliedFact { return s.result }

// State returns the driver's current top-level state.
func (s *Solver) State() State { return s.state }

// Trail exposes the trail for read-only iteration by callers.
func (s *Solver) Trail() *Trail { return s.trail }

// HypClauses returns every currently attached hypothesis clause (added
// via AddClause, not a learned clause or a pushed assumption).
func (s *Solver) HypClauses() []*Clause {
	var out []*Clause
	for _, c := range s.clauses {
		if _, ok := c.Premise.(Hyp); ok {
			out = append(out, c)
		}
	}
	return out
}
