// Package event carries the truth-level data model that flows between
// bbox selection and the labeling engine: per-particle input records,
// the merged output labels, and the enumerations that classify them.
package event

import "strings"

// ProcessType identifies the GEANT4-style creation process of a
// particle, used to drive semantic classification.
type ProcessType int

const (
	Track ProcessType = iota
	Neutron
	Nucleus
	Photon
	Primary
	Compton
	Delta
	Conversion
	Ionization
	PhotoElectron
	Decay
	OtherShower
	InvalidProcess
)

func (p ProcessType) String() string {
	switch p {
	case Track:
		return "Track"
	case Neutron:
		return "Neutron"
	case Nucleus:
		return "Nucleus"
	case Photon:
		return "Photon"
	case Primary:
		return "Primary"
	case Compton:
		return "Compton"
	case Delta:
		return "Delta"
	case Conversion:
		return "Conversion"
	case Ionization:
		return "Ionization"
	case PhotoElectron:
		return "PhotoElectron"
	case Decay:
		return "Decay"
	case OtherShower:
		return "OtherShower"
	default:
		return "InvalidProcess"
	}
}

// SemanticType is the final, per-voxel appearance classification
// emitted in the output tensors. Numeric order matters: labeling fills
// in the types omitted from a configured SemanticPriority in this
// order, so with no override it is the priority order, highest first.
type SemanticType int

const (
	Shower SemanticType = iota
	ShapeTrack
	Michel
	ShapeDelta
	LEScatter
	Ghost
	Unknown
)

func (s SemanticType) String() string {
	switch s {
	case Shower:
		return "Shower"
	case ShapeTrack:
		return "Track"
	case Michel:
		return "Michel"
	case ShapeDelta:
		return "Delta"
	case LEScatter:
		return "LEScatter"
	case Ghost:
		return "Ghost"
	default:
		return "Unknown"
	}
}

// ParseSemanticType parses a config-file semantic type name
// case-insensitively.
func ParseSemanticType(s string) (SemanticType, bool) {
	switch strings.ToUpper(s) {
	case "SHOWER":
		return Shower, true
	case "TRACK":
		return ShapeTrack, true
	case "MICHEL":
		return Michel, true
	case "DELTA":
		return ShapeDelta, true
	case "LESCATTER":
		return LEScatter, true
	case "GHOST":
		return Ghost, true
	case "UNKNOWN":
		return Unknown, true
	default:
		return Unknown, false
	}
}

// InvalidTrackID marks an unset or not-found GEANT4 track id.
const InvalidTrackID uint64 = ^uint64(0)

// InvalidInstanceID marks an unset particle/group/interaction id.
const InvalidInstanceID uint64 = ^uint64(0)

// InvalidPDG marks an unset PDG code.
const InvalidPDG int32 = 1<<31 - 1
