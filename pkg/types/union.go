package types

import "strings"

// UnionType is a flattened, deduplicated set of member types.
type UnionType struct {
	Members []Type
}

// NewUnionType builds a union, flattening nested unions and dropping
// duplicates. A union of one collapses to that member; a union of zero
// collapses to Never.
func NewUnionType(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		if m == nil {
			continue
		}
		if u, ok := m.(*UnionType); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, m)
	}

	var deduped []Type
	for _, m := range flat {
		dup := false
		for _, d := range deduped {
			if d.Equals(m) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, m)
		}
	}

	switch len(deduped) {
	case 0:
		return Never
	case 1:
		return deduped[0]
	default:
		return &UnionType{Members: deduped}
	}
}

func (u *UnionType) typeNode() {}

func (u *UnionType) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (u *UnionType) Equals(other Type) bool {
	o, ok := other.(*UnionType)
	if !ok || len(o.Members) != len(u.Members) {
		return false
	}
	for _, m := range u.Members {
		found := false
		for _, om := range o.Members {
			if m.Equals(om) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SplitUnion returns the union's members, or a single-element slice
// containing t itself if t is not a union. Used by C5's union math.
func SplitUnion(t Type) []Type {
	if u, ok := t.(*UnionType); ok {
		return u.Members
	}
	return []Type{t}
}
