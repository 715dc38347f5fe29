// Package cache persists resolved call signatures across CLI
// invocations, grounded on vovakirdan-surge's msgpack-backed persistence
// layer. Spec §3's Lifecycle states signatures are cached on the
// defining node and immutable for the run; this extends that across
// process boundaries, keyed by the same (file-id, node-index) pair spec
// §9 uses for defining-site identity.
package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/singularitti/zuban/pkg/types"
)

// Key is the on-disk form of types.DefiningSite (kept as its own type so
// the cache file format doesn't depend on pkg/types' internal layout
// changing shape under it).
type Key struct {
	FileID    string
	NodeIndex int
}

func KeyOf(site types.DefiningSite) Key {
	return Key{FileID: site.FileID, NodeIndex: site.NodeIndex}
}

// Entry is a cached signature, flattened into strings because
// pkg/types.Signature isn't itself (de)serializable — it holds
// interfaces (Type, TypeVarLike) msgpack can't reconstruct without a
// registry. We cache the rendered signature text. The Store only records
// and returns entries; nothing in it compares a cached rendering with a
// fresh one or drops stale entries.
type Entry struct {
	Rendered string
	Deprecated bool
}

// Store is an msgpack-backed map from defining-site to cached signature
// rendering, loaded from and flushed to a single file.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[Key]Entry
	dirty   bool
}

// Open loads an existing cache file, or starts an empty one if it
// doesn't exist yet.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "signatures.msgpack")
	s := &Store{path: path, entries: map[Key]Entry{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}
	var raw map[Key]Entry
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	s.entries = raw
	return s, nil
}

// Get returns the cached entry for a defining-site, if present.
func (s *Store) Get(site types.DefiningSite) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[KeyOf(site)]
	return e, ok
}

// Put records a resolved signature's rendering for a defining-site.
func (s *Store) Put(site types.DefiningSite, sig *types.Signature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[KeyOf(site)] = Entry{Rendered: sig.String(), Deprecated: sig.Deprecated}
	s.dirty = true
}

// Clear empties the cache (the CLI's `cache clear` subcommand).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[Key]Entry{}
	s.dirty = true
}

// Len reports how many defining-sites currently have a cached entry (the
// CLI's `cache stat` subcommand).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Flush writes the cache back to disk if anything changed since Open.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := msgpack.Marshal(s.entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
