// Package types models the value-level type system the call-site checker
// reasons about: primitives, unions, tuples, structural protocols, nominal
// classes, typed dicts, and the three flavors of generic variable
// (type variable, type-variable-tuple, param-spec).
package types

// Type is the interface implemented by every type representation.
type Type interface {
	String() string
	Equals(other Type) bool
	typeNode()
}

// Primitive is a singleton, non-composite type.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) typeNode()      {}
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o == p
}

var (
	Any     = &Primitive{Name: "Any"}
	Unknown = &Primitive{Name: "Unknown"}
	Never   = &Primitive{Name: "Never"}
	None    = &Primitive{Name: "None"}
	Bool    = &Primitive{Name: "bool"}
	Int     = &Primitive{Name: "int"}
	Float   = &Primitive{Name: "float"}
	Str     = &Primitive{Name: "str"}
	Bytes   = &Primitive{Name: "bytes"}

	// ErrorType is the sentinel propagated when a **spread is not a mapping
	// (spec §9 open question): downstream consumers should treat it as Never
	// but nothing enforces that centrally.
	ErrorType = &Primitive{Name: "<error>"}
)
