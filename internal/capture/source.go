// Package capture abstracts the sources that produce raw frames and feeds
// them through the dissector chain into sealed packets.
package capture

import (
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core/packet"
)

// Origin identifies the capture source a packet came from. Packets hold it
// as a non-owning back-reference for provenance; only identity matters.
type Origin struct {
	Kind string // "file" or "interface"
	Name string
}

func (o *Origin) String() string {
	return o.Kind + ":" + o.Name
}

// Source produces raw frames from one capture stream.
type Source interface {
	// Origin returns the stable identity of this source.
	Origin() *Origin
	// LinkType describes the outermost layer of the frames produced.
	LinkType() layers.LinkType
	// ReadFrame returns the next captured frame, or io.EOF when the
	// source is exhausted.
	ReadFrame() (*packet.Frame, error)
	Close() error
}

// OriginOf returns the capture origin recorded on a packet, or nil when the
// packet was built without one.
func OriginOf(pkt *packet.Packet) *Origin {
	origin, _ := pkt.Origin().(*Origin)
	return origin
}
