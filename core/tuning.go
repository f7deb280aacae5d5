package core

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Tuning holds the search policy knobs spec §4.6-§4.7 leave
// implementation-defined: restart pacing, activity decay, and clause
// database reduction.
type Tuning struct {
	// LubyBase scales the Luby restart sequence (spec §4.7): the conflict
	// budget before restart k is LubyBase * luby(k).
	LubyBase int `yaml:"lubyBase"`

	// VarDecay and ClauseDecay are the decay factors of the variable and
	// clause activity increments: once per conflict each increment is
	// multiplied by 1/VarDecay or 1/ClauseDecay (spec §4.6-§4.7).
	VarDecay    float64 `yaml:"varDecay"`
	ClauseDecay float64 `yaml:"clauseDecay"`

	// InitialReduceCap is the learned-clause count at which the first
	// database reduction runs; ReduceGrowth multiplies the cap after each
	// reduction (spec §4.7).
	InitialReduceCap int     `yaml:"initialReduceCap"`
	ReduceGrowth     float64 `yaml:"reduceGrowth"`

	// GCInterval is the number of reductions between term GC sweeps
	// (spec §9: term GC piggybacks on clause reduction).
	GCInterval int `yaml:"gcInterval"`
}

// DefaultTuning returns the solver's out-of-the-box tuning, chosen to
// match common CDCL defaults (MiniSat-style decay, Luby restarts).
func DefaultTuning() Tuning {
	return Tuning{
		LubyBase:         100,
		VarDecay:         0.95,
		ClauseDecay:      0.999,
		InitialReduceCap: 2000,
		ReduceGrowth:     1.1,
		GCInterval:       4,
	}
}

// LoadTuning reads a Tuning from a YAML file, starting from
// DefaultTuning so a config only needs to override the fields it cares
// about.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrap(err, "reading tuning config")
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, errors.Wrap(err, "parsing tuning config")
	}
	return t, nil
}
