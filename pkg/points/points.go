// Package points implements the "points backup/restore" discipline of
// spec §4.1, §5, §9: a flat array of cached per-expression inferred
// types, indexed by node index, with contiguous-slice backup/restore so
// an overload trial can run inference over the same expression nodes
// and leave no trace if the trial fails.
//
// This generalizes the teacher's pattern of caching a resolved type
// directly on each AST node (parser.BaseExpression.ComputedType /
// GetComputedType / SetComputedType): the teacher never needed backup
// and restore because it only evaluates one candidate signature per
// call, but our overload resolver (C5) evaluates several alternatives
// over the same nodes and must not let a failed trial's memoized types
// leak into the next one.
package points

import "github.com/singularitti/zuban/pkg/types"

// Points is the flat, per-file cache of computed expression types.
type Points struct {
	cache []types.Type
}

// New allocates a Points array sized for a file with n expression nodes.
func New(n int) *Points {
	return &Points{cache: make([]types.Type, n)}
}

// Grow extends the cache if idx is out of range, so callers don't need
// to pre-size it exactly.
func (p *Points) Grow(idx int) {
	if idx < len(p.cache) {
		return
	}
	grown := make([]types.Type, idx+1)
	copy(grown, p.cache)
	p.cache = grown
}

// Get returns the cached type at idx, or nil if unset.
func (p *Points) Get(idx int) types.Type {
	if idx < 0 || idx >= len(p.cache) {
		return nil
	}
	return p.cache[idx]
}

// Set stores a computed type at idx, growing the cache if needed.
func (p *Points) Set(idx int, t types.Type) {
	p.Grow(idx)
	p.cache[idx] = t
}

// Snapshot is a contiguous-slice copy of the cache over [lo, hi), taken
// before a trial and restored in place if the trial is discarded.
type Snapshot struct {
	points *Points
	lo, hi int
	saved  []types.Type
}

// Backup copies the cache slice spanning the node indices referenced by
// a call-site's argument expressions. The range is half-open: callers
// pass the lowest index and one past the highest.
func (p *Points) Backup(lo, hi int) *Snapshot {
	if lo < 0 {
		lo = 0
	}
	if hi > len(p.cache) {
		hi = len(p.cache)
	}
	if hi < lo {
		hi = lo
	}
	saved := make([]types.Type, hi-lo)
	copy(saved, p.cache[lo:hi])
	return &Snapshot{points: p, lo: lo, hi: hi, saved: saved}
}

// Restore writes the snapshot back in place. Restoring twice, or
// restoring a snapshot whose range was never mutated, is a no-op on the
// cache contents (spec §8 round-trip law).
func (s *Snapshot) Restore() {
	if s == nil {
		return
	}
	copy(s.points.cache[s.lo:s.hi], s.saved)
}
