package types

import "strconv"

// DefiningSite identifies the entity (class, function, or callable
// literal) that bound a type-variable-like. Spec §9: "Model as a
// defining-site identifier... keep a small vector of matchers keyed by
// it in the solver; each type-variable occurrence carries its defining
// site, so lookup is O(scopes) <= 3 in practice." FileID is supplied by
// callers (the driver mints one per loaded fixture file via uuid.UUID,
// stringified here so this package stays dependency-free); NodeIndex is
// the index of the defining node within that file.
type DefiningSite struct {
	FileID    string
	NodeIndex int
}

func (d DefiningSite) String() string {
	return d.FileID + "#" + strconv.Itoa(d.NodeIndex)
}
