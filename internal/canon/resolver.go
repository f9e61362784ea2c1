package canon

// Canon is the testament/book-set scope of a fileset.
type Canon string

const (
	NT      Canon = "NT"
	OT      Canon = "OT"
	Full    Canon = "FULL"
	Partial Canon = "PARTIAL"
	Story   Canon = "STORY"
	Various Canon = "VARIOUS"
)

// collectionMarker is the structural canon signal at position 6 of a fileset
// identifier (e.g. the N in ENGWEBN1DA).
const collectionMarkerIndex = 6

// Resolve classifies a fileset's canon from its identifier structure and the
// catalog size code.
//
// The identifier is the primary signal: when the id is at least seven
// characters long, position 6 carries a collection marker (O, N, C, P, S).
// The size code is a secondary validator. A structurally determined PARTIAL
// is never overridden, since incomplete book sets must not be silently
// promoted to complete testaments. Size codes C/NTOTP force FULL; NT/NTP
// force NT unless the structure already said OT or FULL; OT/OTP force OT
// unless the structure already said NT or FULL. When neither signal resolves
// anything the canon is VARIOUS.
func Resolve(filesetID, size string) Canon {
	var resolved Canon

	if len(filesetID) > collectionMarkerIndex {
		switch filesetID[collectionMarkerIndex] {
		case 'O':
			resolved = OT
		case 'N':
			resolved = NT
		case 'C':
			resolved = Full
		case 'P':
			resolved = Partial
		case 'S':
			resolved = Story
		}
	}

	switch {
	case resolved == Partial:
		// Keep PARTIAL regardless of size code.
	case size == "C" || size == "NTOTP":
		resolved = Full
	case size == "NT" || size == "NTP":
		if resolved != OT && resolved != Full {
			resolved = NT
		}
	case size == "OT" || size == "OTP":
		if resolved != NT && resolved != Full {
			resolved = OT
		}
	}

	if resolved == "" {
		return Various
	}
	return resolved
}

// Expand returns the derived canons a fileset record classifies into. FULL is
// transient: a complete-Bible fileset produces one NT and one OT record, both
// pointing at the same fileset id. Every other canon maps to itself.
func Expand(c Canon) []Canon {
	if c == Full {
		return []Canon{NT, OT}
	}
	return []Canon{c}
}
