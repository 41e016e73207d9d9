package anim

import (
	"sync"

	"github.com/matt-g-everett/nodetx/scene"
)

// A Store holds the initial transform of nodes, keyed by node identity.
// The node itself carries no animation state.
type Store struct {
	mu        sync.Mutex
	snapshots map[*scene.Node]scene.Transform
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{snapshots: make(map[*scene.Node]scene.Transform)}
}

// DefaultStore is shared by players created without WithStore,
// so every player on a node sees the same snapshot.
var DefaultStore = NewStore()

// Init captures the current transform of n unless a snapshot already
// exists. It returns the snapshot held after the call.
func (s *Store) Init(n *scene.Node) scene.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.snapshots[n]; ok {
		return t
	}
	t := n.Transform()
	s.snapshots[n] = t
	return t
}

// Get returns the snapshot of n, if any.
func (s *Store) Get(n *scene.Node) (scene.Transform, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.snapshots[n]
	return t, ok
}

// Clear removes the snapshot of n.
func (s *Store) Clear(n *scene.Node) {
	s.mu.Lock()
	delete(s.snapshots, n)
	s.mu.Unlock()
}

// Len returns the number of nodes with a snapshot.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}
