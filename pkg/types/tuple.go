package types

import "strings"

// TupleShape is a (possibly variadic) tuple: a fixed Prefix, an optional
// Variadic middle segment (the element type of an arbitrary-length run),
// and a fixed Suffix. A TupleShape with no Variadic is a plain fixed-length
// tuple. This single representation serves both plain tuple types and the
// shape accumulated by a type-variable-tuple (spec §3, §4.4).
type TupleShape struct {
	Prefix   []Type
	Variadic Type // nil if fixed-length
	Suffix   []Type
}

// Fixed reports whether the shape has no variadic middle.
func (t *TupleShape) Fixed() bool { return t.Variadic == nil }

// Len returns the fixed length; only meaningful when Fixed().
func (t *TupleShape) Len() int { return len(t.Prefix) + len(t.Suffix) }

// TupleType is a Type wrapping a TupleShape, fixed-length or variadic.
type TupleType struct {
	Shape *TupleShape
}

func NewFixedTuple(elems ...Type) *TupleType {
	return &TupleType{Shape: &TupleShape{Prefix: elems}}
}

func NewVariadicTuple(prefix []Type, variadic Type, suffix []Type) *TupleType {
	return &TupleType{Shape: &TupleShape{Prefix: prefix, Variadic: variadic, Suffix: suffix}}
}

func (t *TupleType) typeNode() {}

func (t *TupleType) String() string {
	var b strings.Builder
	b.WriteString("tuple[")
	parts := make([]string, 0, len(t.Shape.Prefix)+len(t.Shape.Suffix)+1)
	for _, p := range t.Shape.Prefix {
		parts = append(parts, p.String())
	}
	if t.Shape.Variadic != nil {
		parts = append(parts, "*"+t.Shape.Variadic.String())
	}
	for _, s := range t.Shape.Suffix {
		parts = append(parts, s.String())
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("]")
	return b.String()
}

func (t *TupleType) Equals(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok {
		return false
	}
	if len(t.Shape.Prefix) != len(o.Shape.Prefix) || len(t.Shape.Suffix) != len(o.Shape.Suffix) {
		return false
	}
	if (t.Shape.Variadic == nil) != (o.Shape.Variadic == nil) {
		return false
	}
	for i, p := range t.Shape.Prefix {
		if !p.Equals(o.Shape.Prefix[i]) {
			return false
		}
	}
	for i, s := range t.Shape.Suffix {
		if !s.Equals(o.Shape.Suffix[i]) {
			return false
		}
	}
	if t.Shape.Variadic != nil && !t.Shape.Variadic.Equals(o.Shape.Variadic) {
		return false
	}
	return true
}

// ListType is a homogeneous iterable, e.g. list[T].
type ListType struct {
	Elem Type
}

func (l *ListType) typeNode() {}
func (l *ListType) String() string {
	if l.Elem == nil {
		return "list[Any]"
	}
	return "list[" + l.Elem.String() + "]"
}
func (l *ListType) Equals(other Type) bool {
	o, ok := other.(*ListType)
	return ok && l.Elem.Equals(o.Elem)
}

// MappingType is a homogeneous mapping, e.g. dict[K, V]. The key type is
// not restricted here; C1 diagnoses non-string keys on a **spread.
type MappingType struct {
	Key   Type
	Value Type
}

func (m *MappingType) typeNode() {}
func (m *MappingType) String() string {
	return "dict[" + m.Key.String() + ", " + m.Value.String() + "]"
}
func (m *MappingType) Equals(other Type) bool {
	o, ok := other.(*MappingType)
	return ok && m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
}
