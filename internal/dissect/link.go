package dissect

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

const (
	etherTypeIPv4 = 0x0800
	etherTypeIPv6 = 0x86DD
	etherTypeVLAN = 0x8100
)

// linkDissector parses the Ethernet frame header, unwrapping up to two
// VLAN tags (QinQ).
type linkDissector struct{}

func newLinkDissector() *linkDissector {
	return &linkDissector{}
}

func (d *linkDissector) Kind() core.ProtocolKind {
	return core.ProtoLink
}

func (d *linkDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return KindNone, nil, core.ErrPacketTooShort
	}

	link := &core.LinkData{
		EtherType: uint16(eth.EthernetType),
	}
	copy(link.SrcMAC[:], eth.SrcMAC)
	copy(link.DstMAC[:], eth.DstMAC)

	payload := eth.Payload
	for link.EtherType == etherTypeVLAN && len(link.VLANs) < 2 {
		var dot1q layers.Dot1Q
		if err := dot1q.DecodeFromBytes(payload, gopacket.NilDecodeFeedback); err != nil {
			return KindNone, nil, core.ErrPacketTooShort
		}
		link.VLANs = append(link.VLANs, dot1q.VLANIdentifier)
		link.EtherType = uint16(dot1q.Type)
		payload = dot1q.Payload
	}

	if err := pkt.SetData(core.ProtoLink, link); err != nil {
		return KindNone, nil, err
	}

	switch link.EtherType {
	case etherTypeIPv4, etherTypeIPv6:
		return core.ProtoIP, payload, nil
	default:
		return KindNone, nil, nil
	}
}

func (d *linkDissector) TeardownData(pkt *packet.Packet) {}
