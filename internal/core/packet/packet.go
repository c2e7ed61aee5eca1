// Package packet implements the captured packet aggregate.
//
// A Packet is the unit of shared ownership across the capture pipeline,
// storage and UI. It holds one slot per known protocol kind, filled by the
// dissector chain, and a list of raw frames (more than one after stream
// reassembly). Once sealed it is logically immutable and safe for
// concurrent read-only access.
package packet

import (
	"fmt"
	"sync/atomic"

	"firestige.xyz/strix/internal/core"
)

// TransportUnknown is reported for packets carrying neither TCP nor UDP.
const TransportUnknown = "???"

// Teardowner releases protocol-specific side resources owned by one slot.
// The dissector that produced the slot data, not the data value itself,
// knows what to release.
type Teardowner interface {
	TeardownData(pkt *Packet)
}

// DissectorLookup resolves the teardown behavior for a protocol kind.
// Implemented by the dissector registry.
type DissectorLookup interface {
	Lookup(kind core.ProtocolKind) (Teardowner, bool)
}

// Packet is the aggregate of every protocol interpretation of one logical
// captured unit.
type Packet struct {
	// origin is a non-owning back-reference to the capture source that
	// produced this packet. Identity only, never dereferenced here.
	origin any

	slots  [core.ProtocolCount]any
	frames []*Frame

	// Memoized addresses, computed on first access. Slots are never
	// mutated after dissection, so the cache cannot go stale.
	src *core.Address
	dst *core.Address

	lookup DissectorLookup
	refs   atomic.Int32
	sealed atomic.Bool
}

// New creates an empty packet holding one owning reference for the caller.
// lookup may be nil when no dissector owns side resources.
func New(origin any, lookup DissectorLookup) *Packet {
	p := &Packet{
		origin: origin,
		lookup: lookup,
	}
	p.refs.Store(1)
	return p
}

// Ref acquires a shared reference and returns the packet for chaining.
func (p *Packet) Ref() *Packet {
	if p.refs.Add(1) <= 1 {
		panic("strix: ref of released packet")
	}
	return p
}

// Unref drops one reference. When the last reference is dropped every
// present slot is torn down through the dissector lookup and the frame
// buffers are released. Releasing more times than acquired is a defect.
func (p *Packet) Unref() {
	refs := p.refs.Add(-1)
	if refs < 0 {
		panic("strix: unref of released packet")
	}
	if refs == 0 {
		p.free()
	}
}

// free runs exactly once, on the refcount reaching zero.
func (p *Packet) free() {
	for kind := core.ProtocolKind(0); kind < core.ProtocolCount; kind++ {
		if p.slots[kind] == nil {
			continue
		}
		if p.lookup != nil {
			if td, ok := p.lookup.Lookup(kind); ok {
				td.TeardownData(p)
			}
		}
		p.slots[kind] = nil
	}
	for i := range p.frames {
		p.frames[i].Data = nil
		p.frames[i] = nil
	}
	p.frames = nil
	p.src = nil
	p.dst = nil
}

// SetData installs dissection data for kind. Each kind is installed at most
// once per packet; a second install is a defect in the dissector chain and
// leaves the existing data untouched.
func (p *Packet) SetData(kind core.ProtocolKind, data any) error {
	if !kind.Valid() {
		return fmt.Errorf("strix: invalid protocol kind %d", kind)
	}
	if p.sealed.Load() {
		return core.ErrPacketSealed
	}
	if p.slots[kind] != nil {
		return fmt.Errorf("%w: %s", core.ErrDuplicateSlot, kind)
	}
	p.slots[kind] = data
	return nil
}

// Data returns the slot data for kind, or nil when absent.
func (p *Packet) Data(kind core.ProtocolKind) any {
	if !kind.Valid() {
		return nil
	}
	return p.slots[kind]
}

// Has reports whether the packet carries a layer of the given kind.
func (p *Packet) Has(kind core.ProtocolKind) bool {
	return kind.Valid() && p.slots[kind] != nil
}

// Seal marks the end of dissection. After sealing the packet is read-only
// and may be shared across goroutines without locking.
func (p *Packet) Seal() {
	p.sealed.Store(true)
}

// Sealed reports whether dissection has finished.
func (p *Packet) Sealed() bool {
	return p.sealed.Load()
}

// Origin returns the capture source identity this packet came from.
func (p *Packet) Origin() any {
	return p.origin
}

// Transport derives the transport label from slot presence alone.
// The order of the checks is the contract: UDP wins outright, WS refines
// TCP, and TLS refines either TCP or WS.
func (p *Packet) Transport() string {
	if p.Has(core.ProtoUDP) {
		return "UDP"
	}
	if p.Has(core.ProtoTCP) {
		if p.Has(core.ProtoWS) {
			if p.Has(core.ProtoTLS) {
				return "WSS"
			}
			return "WS"
		}
		if p.Has(core.ProtoTLS) {
			return "TLS"
		}
		return "TCP"
	}
	return TransportUnknown
}

// ByTime is a chronological comparator for sorting captured packets.
// Packets without frames were never populated; comparing them is a defect.
func ByTime(a, b *Packet) int {
	ta, err := a.Timestamp()
	if err != nil {
		panic("strix: sorting packet with no frames")
	}
	tb, err := b.Timestamp()
	if err != nil {
		panic("strix: sorting packet with no frames")
	}
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	default:
		return 0
	}
}
