package ui

// PointerMode decides where the field's pointer comes from.
type PointerMode int

const (
	// PointerLive follows terminal mouse motion.
	PointerLive PointerMode = iota
	// PointerPinned holds the pointer where it was last clicked.
	PointerPinned
	// PointerAuto sweeps the pointer along a slow orbit, for terminals
	// without mouse reporting.
	PointerAuto
)

// Next cycles to the next pointer mode.
func (p PointerMode) Next() PointerMode {
	switch p {
	case PointerLive:
		return PointerPinned
	case PointerPinned:
		return PointerAuto
	default:
		return PointerLive
	}
}

// String returns the name of the pointer mode.
func (p PointerMode) String() string {
	switch p {
	case PointerPinned:
		return "pinned"
	case PointerAuto:
		return "auto"
	default:
		return "live"
	}
}

// Icon returns a visual indicator for the pointer mode.
func (p PointerMode) Icon() string {
	switch p {
	case PointerPinned:
		return "⊙"
	case PointerAuto:
		return "∞"
	default:
		return "➚"
	}
}
