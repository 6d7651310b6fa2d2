package parasitics

import (
	"sync"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
)

type netCornerKey struct {
	net    network.ID
	corner string
}

// Store is the top-level parasitic-network container, one Network per
// (net, corner) (spec §4.3: "create a per-(net, corner) parasitic").
// Callers only ever reach a Network through the Store, so Delete leaves no
// dangling reference for them to hold.
type Store struct {
	mu        sync.RWMutex
	networks  map[netCornerKey]*Network
}

// NewStore constructs an empty parasitic Store.
func NewStore() *Store {
	return &Store{networks: make(map[netCornerKey]*Network)}
}

// Ensure returns the Network for (net, corner), creating it with the given
// includesPinCaps flag if this is the first reference.
func (s *Store) Ensure(net network.Net, corner liberty.Corner, includesPinCaps bool) *Network {
	key := netCornerKey{net.ID, corner.ID}
	s.mu.Lock()
	defer s.mu.Unlock()
	if pn, ok := s.networks[key]; ok {
		return pn
	}
	pn := NewNetwork(net, includesPinCaps)
	s.networks[key] = pn
	return pn
}

// Find returns the Network for (net, corner), if one exists.
func (s *Store) Find(net network.Net, corner liberty.Corner) (*Network, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pn, ok := s.networks[netCornerKey{net.ID, corner.ID}]
	return pn, ok
}

// Delete removes every corner's Network for net. Every node, resistor and
// capacitor the networks owned goes with them — nothing else in the
// module holds a parasitics.Node/Resistor/Capacitor pointer directly, only
// a NodeID/ResistorID/CapacitorID scoped to its owning Network, so once the
// Network is unreachable from the Store there is no dangling reference
// left for a caller to dereference (spec §4.3 invariant).
func (s *Store) Delete(net network.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.networks {
		if key.net == net {
			delete(s.networks, key)
		}
	}
}

// DeleteCorner removes just the (net, corner) Network.
func (s *Store) DeleteCorner(net network.ID, corner liberty.Corner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.networks, netCornerKey{net, corner.ID})
}

// HaveParasitics reports whether the store holds any network at all.
func (s *Store) HaveParasitics() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.networks) > 0
}
