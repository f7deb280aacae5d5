package core

// PluginID identifies a registered theory plugin. The core reserves 0 for
// itself (Boolean terms created directly by the core, before any plugin
// wraps them in a connective).
type PluginID uint8

const (
	CorePluginID PluginID = 0

	pluginIDBits  = 8
	localBits     = 32 - pluginIDBits
	localIDMask   = (uint32(1) << localBits) - 1
	pluginIDShift = localBits
)

// TermID is a term's stable, hash-consing-independent numeric identity.
// The owning plugin's id occupies the high bits, per spec §3.
type TermID uint32

func mkTermID(p PluginID, local uint32) TermID {
	if local > localIDMask {
		panic("plugin exhausted its term id space")
	}
	return TermID(uint32(p)<<pluginIDShift | (local & localIDMask))
}

// Plugin returns the id of the plugin that owns this term.
func (id TermID) Plugin() PluginID {
	return PluginID(uint32(id) >> pluginIDShift)
}

// AtomID is a signed occurrence of a Boolean term: the positive atom's id
// is even, and not(a).id == a.id ^ 1 (spec §3).
type AtomID uint32

// Negate returns the id of the opposite-polarity atom sharing this atom's
// term.
func (id AtomID) Negate() AtomID { return id ^ 1 }

// IsNeg reports whether this is the negative-polarity atom of its term.
func (id AtomID) IsNeg() bool { return id&1 == 1 }

// flags is the per-term bitfield from spec §3.
type flags uint8

const (
	flagIsAdded flags = 1 << iota
	flagIsDeleted
	flagMarkPos
	flagMarkNeg
	flagSeen
	flagGCMarked
	flagNegated
)

func (f *flags) set(bit flags)      { *f |= bit }
func (f *flags) clear(bit flags)    { *f &^= bit }
func (f *flags) has(bit flags) bool { return *f&bit != 0 }
