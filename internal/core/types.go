// Package core defines the per-protocol slot data produced by dissectors.
package core

import "net/netip"

// LinkData is the L2 dissection result.
type LinkData struct {
	SrcMAC    [6]byte
	DstMAC    [6]byte
	EtherType uint16   // 0x0800=IPv4, 0x86DD=IPv6
	VLANs     []uint16 // 0~2 VLAN IDs (QinQ scenarios have 2)
}

// IPData is the L3 dissection result (IPv4/IPv6).
type IPData struct {
	Version  uint8
	SrcIP    netip.Addr // Go stdlib value type, zero allocation
	DstIP    netip.Addr
	Protocol uint8 // TCP=6, UDP=17
	TTL      uint8
	TotalLen uint16
}

// UDPData is the UDP transport dissection result.
type UDPData struct {
	SrcPort uint16
	DstPort uint16
}

// TCPData is the TCP transport dissection result.
type TCPData struct {
	SrcPort uint16
	DstPort uint16
	SeqNum  uint32
	AckNum  uint32
	Flags   uint8
}

// TLSData records that a TCP payload carries TLS records.
// Payload stays encrypted; only record framing is inspected.
type TLSData struct {
	Version     uint16 // record layer version, e.g. 0x0303
	ContentType uint8  // first record content type (20-23)
	Handshake   bool   // a handshake record was observed
}

// WSData records a WebSocket layer over TCP (upgrade request or frame).
type WSData struct {
	Upgrade bool  // HTTP upgrade handshake rather than a data frame
	OpCode  uint8 // frame opcode when Upgrade is false
	Masked  bool
}

// SIPData is the SIP application dissection result.
type SIPData struct {
	IsRequest  bool
	Method     string // request method, e.g. "INVITE"
	StatusCode int    // response status, zero for requests
	CallID     string
	Headers    map[string]string
	Body       []byte
}
