package external

import "github.com/singularitti/zuban/pkg/types"

// ExpectedType carries the "result context" an expression is inferred
// under — the expected type flowing in from an enclosing call's
// parameter, or nil for no context (spec §4.1, §4.4).
type ExpectedType struct {
	Type types.Type
}

// Expression is the minimal contract the core needs from a call-site
// argument expression. Constructing the syntax tree, resolving names,
// and the actual type-inference algorithm are all out of scope here
// (spec §1) — the core only ever calls back into Infer to obtain an
// argument's type, optionally under a contextual expected type.
type Expression interface {
	// Index is this expression's position in the enclosing file's flat
	// points array (pkg/points), used for cached-inference backup and
	// restore across overload trials.
	Index() int
	Line() int
	Infer(ctx *ExpectedType) (types.Type, error)
}
