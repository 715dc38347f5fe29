package types

import "strings"

// Signature is a callable signature: an ordered parameter list, a return
// type, and the type-variable-likes it binds (spec §3).
type Signature struct {
	Params     []*Param
	ReturnType Type
	TypeVars   []TypeVarLike

	Deprecated     bool
	DeprecatedNote string
}

func (s *Signature) typeNode() {}

func (s *Signature) String() string {
	var b strings.Builder
	if len(s.TypeVars) > 0 {
		names := make([]string, len(s.TypeVars))
		for i, tv := range s.TypeVars {
			names[i] = tv.Name()
		}
		b.WriteString("[" + strings.Join(names, ", ") + "]")
	}
	b.WriteString("(")
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(") -> ")
	if s.ReturnType != nil {
		b.WriteString(s.ReturnType.String())
	} else {
		b.WriteString("None")
	}
	return b.String()
}

func (s *Signature) Equals(other Type) bool {
	o, ok := other.(*Signature)
	if !ok || len(s.Params) != len(o.Params) {
		return false
	}
	for i, p := range s.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	if (s.ReturnType == nil) != (o.ReturnType == nil) {
		return false
	}
	return s.ReturnType == nil || s.ReturnType.Equals(o.ReturnType)
}

// HasTypeVars reports whether the signature's parameters or return type
// mention any of its own (or an enclosing scope's) type-variable-likes;
// used as the "might-have-type-vars" skip hint (spec §3).
func (s *Signature) HasTypeVars() bool {
	var contains func(Type) bool
	contains = func(t Type) bool {
		switch v := t.(type) {
		case nil:
			return false
		case *TypeVarType:
			return true
		case *ListType:
			return contains(v.Elem)
		case *MappingType:
			return contains(v.Key) || contains(v.Value)
		case *TupleType:
			for _, p := range v.Shape.Prefix {
				if contains(p) {
					return true
				}
			}
			for _, p := range v.Shape.Suffix {
				if contains(p) {
					return true
				}
			}
			return contains(v.Shape.Variadic)
		case *UnionType:
			for _, m := range v.Members {
				if contains(m) {
					return true
				}
			}
			return false
		case *Signature:
			for _, p := range v.Params {
				if contains(p.Type) {
					return true
				}
			}
			return contains(v.ReturnType)
		default:
			return false
		}
	}
	for _, p := range s.Params {
		if contains(p.Type) {
			return true
		}
	}
	return contains(s.ReturnType)
}

// CallableKind distinguishes how a Callable was introduced, used by the
// solver's constructor-binding rule (spec §4.4).
type CallableKind int

const (
	PlainFunction CallableKind = iota
	BoundMethod
	Constructor
)

// Callable is the target of a call expression: either a single signature
// or, for overload sets, several alternatives tried in source order
// (spec §4.5). It is not itself a Type — callers hold a *Callable
// alongside whatever Type the checked expression produced.
type Callable struct {
	Name       string
	Kind       CallableKind
	Signatures []*Signature // len == 1 for a plain callable; > 1 for an overload set

	// OwningClass/SelfType support constructor binding: the class's own
	// type-variable-likes are solved together with the signature's.
	OwningClass *ClassType
	SelfType    Type
}

func (c *Callable) IsOverloadSet() bool { return len(c.Signatures) > 1 }
