package dissect

import (
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

const (
	protocolTCP = 6
	protocolUDP = 17
)

// ipDissector parses the IPv4 or IPv6 header, selected by the version
// nibble so raw-IP captures work without a link layer.
type ipDissector struct{}

func newIPDissector() *ipDissector {
	return &ipDissector{}
}

func (d *ipDissector) Kind() core.ProtocolKind {
	return core.ProtoIP
}

func (d *ipDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	if len(data) == 0 {
		return KindNone, nil, core.ErrPacketTooShort
	}

	var (
		ip      *core.IPData
		payload []byte
	)
	switch data[0] >> 4 {
	case 4:
		var ip4 layers.IPv4
		if err := ip4.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
			return KindNone, nil, core.ErrPacketTooShort
		}
		ip = &core.IPData{
			Version:  4,
			Protocol: uint8(ip4.Protocol),
			TTL:      ip4.TTL,
			TotalLen: ip4.Length,
		}
		ip.SrcIP, _ = netip.AddrFromSlice(ip4.SrcIP)
		ip.DstIP, _ = netip.AddrFromSlice(ip4.DstIP)
		payload = ip4.Payload
	case 6:
		var ip6 layers.IPv6
		if err := ip6.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
			return KindNone, nil, core.ErrPacketTooShort
		}
		ip = &core.IPData{
			Version:  6,
			Protocol: uint8(ip6.NextHeader),
			TTL:      ip6.HopLimit,
			TotalLen: ip6.Length,
		}
		ip.SrcIP, _ = netip.AddrFromSlice(ip6.SrcIP)
		ip.DstIP, _ = netip.AddrFromSlice(ip6.DstIP)
		payload = ip6.Payload
	default:
		return KindNone, nil, nil
	}

	if err := pkt.SetData(core.ProtoIP, ip); err != nil {
		return KindNone, nil, err
	}

	switch ip.Protocol {
	case protocolUDP:
		return core.ProtoUDP, payload, nil
	case protocolTCP:
		return core.ProtoTCP, payload, nil
	default:
		return KindNone, nil, nil
	}
}

func (d *ipDissector) TeardownData(pkt *packet.Packet) {}
