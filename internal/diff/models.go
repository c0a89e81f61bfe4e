package diff

// DevNull marks a file that does not exist on one side of the change.
const DevNull = "/dev/null"

type ChangeKind string

const (
	Create ChangeKind = "create"
	Delete ChangeKind = "delete"
	Modify ChangeKind = "modify"
)

type OpType string

const (
	OpContext OpType = "context"
	OpAdd     OpType = "add"
	OpDelete  OpType = "delete"
)

// Op is one body line of a hunk. Order within a hunk mirrors the diff text.
type Op struct {
	Type OpType
	Text string
}

// Hunk is one contiguous edit region. Header keeps the raw @@ line; the
// applier parses it lazily so a malformed header only drops that hunk.
type Hunk struct {
	Header string
	Ops    []Op
}

// FileChange is one file's portion of a unified diff. Hunks keep their order
// of appearance, which matters: later hunk offsets are defined relative to
// the cumulative effect of earlier ones.
type FileChange struct {
	Path      string
	OldMarker string
	NewMarker string

	// OriginTagged records the loose "looks new" check on the origin marker
	// (sentinel or a/ prefix). Classification for application purposes comes
	// from Kind, not from this flag.
	OriginTagged bool

	Hunks []Hunk

	// CreatedContent accumulates the literal text of + lines when the change
	// creates a file, in which case hunks are never replayed.
	CreatedContent string
}

// Kind classifies the change from its markers: a /dev/null target means the
// file is deleted, a /dev/null origin means it is created.
func (c FileChange) Kind() ChangeKind {
	switch {
	case c.NewMarker == DevNull:
		return Delete
	case c.OldMarker == DevNull:
		return Create
	default:
		return Modify
	}
}
