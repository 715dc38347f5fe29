package types

// TypedDictField is one named, ordered field of a TypedDictType.
type TypedDictField struct {
	Name     string
	Type     Type
	Required bool
}

// TypedDictType is a structurally-typed mapping with a fixed, ordered set
// of named fields (spec GLOSSARY). Field order matters: a `**typed_dict`
// expansion fans out in declared order (spec §4.1).
type TypedDictType struct {
	Name   string
	Fields []TypedDictField
}

func (t *TypedDictType) typeNode()      {}
func (t *TypedDictType) String() string { return t.Name }
func (t *TypedDictType) Equals(other Type) bool {
	o, ok := other.(*TypedDictType)
	return ok && o == t
}

// Field looks up a field by name.
func (t *TypedDictType) Field(name string) (TypedDictField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return TypedDictField{}, false
}
