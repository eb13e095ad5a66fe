package planner

// Kind is the filesystem operation an Action performs.
type Kind int

const (
	KindCopy   Kind = iota // copy Source to Dest, leaving Source in place
	KindMove               // move Source to Dest
	KindRename             // rename Source to Dest within its directory
	KindDelete             // delete Source
	KindSkip               // leave Source untouched; Reason says why
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindMove:
		return "move"
	case KindRename:
		return "rename"
	case KindDelete:
		return "delete"
	case KindSkip:
		return "skip"
	}
	return "unknown"
}

// Purpose says which stage of reconciliation produced an Action.
type Purpose int

const (
	PurposeOutput    Purpose = iota // a matched asset placed under its canonical name
	PurposeDuplicate                // a redundant -NN variant
	PurposeUnmatched                // an asset without a canonical name
)

// Action is one planned filesystem operation on a single asset file. It is
// produced by the planner and organizer and consumed by the executor, which
// is the only code that touches the filesystem.
type Action struct {
	Kind    Kind
	Purpose Purpose
	Source  string
	Dest    string // empty for KindDelete and KindSkip
	Bucket  string

	// Canonical is the canonical name an output action writes.
	Canonical string
	Reason    string
}

// Plan is an ordered list of actions.
type Plan []Action

// Count returns how many actions in p have kind k and purpose pur.
func (p Plan) Count(k Kind, pur Purpose) int {
	n := 0
	for _, a := range p {
		if a.Kind == k && a.Purpose == pur {
			n++
		}
	}
	return n
}
