package domain

// RootKind distinguishes a reconstructed root value from the two
// categorical cases that would otherwise both look like an empty string.
type RootKind uint8

const (
	// RootUnknown means the analysis carries no root field at all, or the
	// dictionary row could not be linked to an analysis.
	RootUnknown RootKind = iota
	// RootNull is a genuine null-grade root: the field is present but empty.
	RootNull
	// RootValue is an ordinary reconstructed root such as "a-dade-g".
	RootValue
)

const (
	RootLabelNull    = "null"
	RootLabelUnknown = "unknown"
)

// Root is a resolved verb root. The zero value is the unknown root.
// Root is comparable and is used directly as an index key.
type Root struct {
	kind  RootKind
	value string
}

// UnknownRoot returns the root used for missing or unlinked data.
func UnknownRoot() Root { return Root{kind: RootUnknown} }

// NullRoot returns the null-grade root.
func NullRoot() Root { return Root{kind: RootNull} }

// NewRoot returns a root carrying the given value. An empty value yields
// the null-grade root, matching ResolveRoot. Values spelled like the
// categorical labels collapse onto those roots, so one label is one key.
func NewRoot(value string) Root {
	switch value {
	case "", RootLabelNull:
		return NullRoot()
	case RootLabelUnknown:
		return UnknownRoot()
	default:
		return Root{kind: RootValue, value: value}
	}
}

// ResolveRoot applies the three-way resolution rule to a raw root field:
// nil (field absent) resolves to unknown, "" to null, anything else to itself.
func ResolveRoot(field *string) Root {
	if field == nil {
		return UnknownRoot()
	}
	return NewRoot(*field)
}

// ParseRootLabel is the inverse of Label, used for lookups keyed by the
// label a client sees.
func ParseRootLabel(label string) Root {
	if label == "" {
		return UnknownRoot()
	}
	return NewRoot(label)
}

func (r Root) Kind() RootKind { return r.kind }

func (r Root) IsUnknown() bool { return r.kind == RootUnknown }

func (r Root) IsNull() bool { return r.kind == RootNull }

// Value returns the raw root value; empty for the categorical kinds.
func (r Root) Value() string { return r.value }

// Label returns the display and search label: the value itself, or the
// literal categories "null" and "unknown".
func (r Root) Label() string {
	switch r.kind {
	case RootValue:
		return r.value
	case RootNull:
		return RootLabelNull
	default:
		return RootLabelUnknown
	}
}

func (r Root) String() string { return r.Label() }

// MarshalText encodes the root as its label.
func (r Root) MarshalText() ([]byte, error) {
	return []byte(r.Label()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (r *Root) UnmarshalText(text []byte) error {
	*r = ParseRootLabel(string(text))
	return nil
}
