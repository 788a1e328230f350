package viewmode

// Radio is a pair of mutually exclusive options, one per mode. Checking one
// option unchecks the other, so exactly one is checked at any time.
//
// Radio is the host-side surface; renderers only observe it through Source.
type Radio struct {
	identifiers bool
	pieces      bool
}

// NewRadio returns a Radio with the option for initial checked.
func NewRadio(initial Mode) *Radio {
	r := &Radio{}
	r.Select(initial)

	return r
}

// Select checks the option for m and unchecks the other. Invalid modes
// select Pieces. It reports whether the selection changed.
func (r *Radio) Select(m Mode) bool {
	if !m.Valid() {
		m = Pieces
	}

	changed := !r.Checked(m)
	r.identifiers = m == Identifiers
	r.pieces = m == Pieces

	return changed
}

// Toggle checks whichever option is currently unchecked and returns the new mode.
func (r *Radio) Toggle() Mode {
	next := r.CurrentMode().Other()
	r.Select(next)

	return next
}

// Checked reports whether the option for m is checked.
func (r *Radio) Checked(m Mode) bool {
	switch m {
	case Identifiers:
		return r.identifiers
	case Pieces:
		return r.pieces
	default:
		return false
	}
}

// CurrentMode implements Source by inspecting which option is checked.
func (r *Radio) CurrentMode() Mode {
	if r.identifiers {
		return Identifiers
	}

	return Pieces
}
