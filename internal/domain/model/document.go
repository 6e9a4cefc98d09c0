package model

// Kind is the JSON type of a decoded value.
type Kind int

// JSON value kinds.
const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindBool
	KindNull
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Field is one key/value pair of a profile record.
// Number is only meaningful when Kind is KindNumber.
type Field struct {
	Name   string
	Kind   Kind
	Number float64
}

// Entry is one top-level key of a decoded document. Fields is populated
// only when Kind is KindObject.
type Entry struct {
	Key    string
	Kind   Kind
	Fields []Field
}

// Document is a decoded JSON object that keeps key order. Duplicate keys have
// already been collapsed: the first occurrence fixes the position and the
// last occurrence provides the value.
type Document struct {
	Entries []Entry
}

// Len returns the number of distinct top-level keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}
