package dissect

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

// TCP flag bits as stored in core.TCPData.Flags.
const (
	tcpFIN = 0x01
	tcpSYN = 0x02
	tcpRST = 0x04
	tcpPSH = 0x08
	tcpACK = 0x10
	tcpURG = 0x20
)

// udpDissector parses the UDP header. UDP payload goes straight to the
// SIP dissector; there is nothing to unwrap in between.
type udpDissector struct{}

func newUDPDissector() *udpDissector {
	return &udpDissector{}
}

func (d *udpDissector) Kind() core.ProtocolKind {
	return core.ProtoUDP
}

func (d *udpDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	var udp layers.UDP
	if err := udp.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return KindNone, nil, core.ErrPacketTooShort
	}

	err := pkt.SetData(core.ProtoUDP, &core.UDPData{
		SrcPort: uint16(udp.SrcPort),
		DstPort: uint16(udp.DstPort),
	})
	if err != nil {
		return KindNone, nil, err
	}
	return core.ProtoSIP, udp.Payload, nil
}

func (d *udpDissector) TeardownData(pkt *packet.Packet) {}

// tcpDissector parses the TCP header. TCP payload runs through the
// TLS and WebSocket heuristics before SIP.
type tcpDissector struct{}

func newTCPDissector() *tcpDissector {
	return &tcpDissector{}
}

func (d *tcpDissector) Kind() core.ProtocolKind {
	return core.ProtoTCP
}

func (d *tcpDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	var tcp layers.TCP
	if err := tcp.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return KindNone, nil, core.ErrPacketTooShort
	}

	var flags uint8
	if tcp.FIN {
		flags |= tcpFIN
	}
	if tcp.SYN {
		flags |= tcpSYN
	}
	if tcp.RST {
		flags |= tcpRST
	}
	if tcp.PSH {
		flags |= tcpPSH
	}
	if tcp.ACK {
		flags |= tcpACK
	}
	if tcp.URG {
		flags |= tcpURG
	}

	err := pkt.SetData(core.ProtoTCP, &core.TCPData{
		SrcPort: uint16(tcp.SrcPort),
		DstPort: uint16(tcp.DstPort),
		SeqNum:  tcp.Seq,
		AckNum:  tcp.Ack,
		Flags:   flags,
	})
	if err != nil {
		return KindNone, nil, err
	}
	return core.ProtoTLS, tcp.Payload, nil
}

func (d *tcpDissector) TeardownData(pkt *packet.Packet) {}
