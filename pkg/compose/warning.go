package compose

import "fmt"

// WarningKind classifies a soft finding.
type WarningKind int

const (
	// OverlapWarning: packed spacing on some axis is below one diameter.
	OverlapWarning WarningKind = iota
	// GeometryWarning: an advisory finding from footprint validation.
	GeometryWarning
	// ProtrusionWarning: some spheres extend past their prism.
	ProtrusionWarning
	// InterpenetrationWarning: some sphere pairs are closer than one diameter.
	InterpenetrationWarning
)

func (k WarningKind) String() string {
	switch k {
	case OverlapWarning:
		return "overlap"
	case GeometryWarning:
		return "geometry"
	case ProtrusionWarning:
		return "protrusion"
	case InterpenetrationWarning:
		return "interpenetration"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Warning is reported alongside a successful payload and never aborts a
// scenario.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Part    string      `json:"part,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	if w.Part == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Part, w.Message)
}
