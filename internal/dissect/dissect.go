// Package dissect implements the per-protocol dissector chain that fills a
// packet's protocol slots in layer order.
package dissect

import (
	"fmt"
	"sync"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/log"
)

// KindNone terminates the dissection chain.
const KindNone = core.ProtocolCount

// Dissector parses one protocol layer.
type Dissector interface {
	// Kind is the protocol slot this dissector owns.
	Kind() core.ProtocolKind

	// Dissect parses data, installs this protocol's slot on pkt, and
	// returns the next kind to try plus the payload for it. Heuristic
	// dissectors that do not recognize the data hand the bytes to their
	// fallback kind without installing anything. KindNone stops the chain.
	Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error)

	// TeardownData releases protocol side resources when the packet is
	// freed. Implements packet.Teardowner.
	TeardownData(pkt *packet.Packet)
}

// Registry maps protocol kinds to their dissectors. It doubles as the
// teardown lookup the packet slot table dispatches through on free.
type Registry struct {
	mu         sync.RWMutex
	dissectors map[core.ProtocolKind]Dissector
}

func NewRegistry() *Registry {
	return &Registry{
		dissectors: make(map[core.ProtocolKind]Dissector),
	}
}

// Register adds a dissector. Each kind has at most one dissector.
func (r *Registry) Register(d Dissector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := d.Kind()
	if !kind.Valid() {
		return fmt.Errorf("strix: invalid protocol kind %d", kind)
	}
	if _, exists := r.dissectors[kind]; exists {
		return fmt.Errorf("%w: %s", core.ErrDuplicateDissector, kind)
	}
	r.dissectors[kind] = d
	return nil
}

// Get returns the dissector for kind.
func (r *Registry) Get(kind core.ProtocolKind) (Dissector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dissectors[kind]
	return d, ok
}

// Lookup implements packet.DissectorLookup.
func (r *Registry) Lookup(kind core.ProtocolKind) (packet.Teardowner, bool) {
	d, ok := r.Get(kind)
	if !ok {
		return nil, false
	}
	return d, true
}

// NewDefaultRegistry builds a registry with every built-in dissector.
func NewDefaultRegistry(logger log.Logger) *Registry {
	r := NewRegistry()
	for _, d := range []Dissector{
		newLinkDissector(),
		newIPDissector(),
		newUDPDissector(),
		newTCPDissector(),
		newTLSDissector(),
		newWSDissector(),
		newSIPDissector(logger),
	} {
		if err := r.Register(d); err != nil {
			// Built-in kinds are unique by construction.
			panic(err)
		}
	}
	return r
}
