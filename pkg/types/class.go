package types

// ClassType is a nominal class: fields, a method table, bases, and its
// own declared type-variable-likes (generic classes).
type ClassType struct {
	Name       string
	TypeVars   []TypeVarLike
	Fields     map[string]Type
	Methods    map[string]*Signature
	Bases      []*ClassType
	Init       *Signature // constructor signature, nil if default
}

func (c *ClassType) typeNode()      {}
func (c *ClassType) String() string { return c.Name }
func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && o == c
}

// InstantiatedClass is a generic class applied to concrete type arguments,
// e.g. `list[int]` when `list` is user-defined rather than builtin.
type InstantiatedClass struct {
	Class     *ClassType
	TypeArgs  []Type
}

func (i *InstantiatedClass) typeNode() {}
func (i *InstantiatedClass) String() string {
	s := i.Class.Name + "["
	for idx, a := range i.TypeArgs {
		if idx > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + "]"
}
func (i *InstantiatedClass) Equals(other Type) bool {
	o, ok := other.(*InstantiatedClass)
	if !ok || o.Class != i.Class || len(o.TypeArgs) != len(i.TypeArgs) {
		return false
	}
	for idx, a := range i.TypeArgs {
		if !a.Equals(o.TypeArgs[idx]) {
			return false
		}
	}
	return true
}

// ProtocolType is a structural interface: a named bag of required member
// types, matched by shape rather than declared inheritance.
type ProtocolType struct {
	Name    string
	Members map[string]Type
}

func (p *ProtocolType) typeNode()      {}
func (p *ProtocolType) String() string { return p.Name }
func (p *ProtocolType) Equals(other Type) bool {
	o, ok := other.(*ProtocolType)
	return ok && o == p
}
