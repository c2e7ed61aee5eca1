// Package core defines core data types with zero external dependencies.
package core

// ProtocolKind identifies one protocol layer a packet may carry.
//
// Kinds are dense indices into the per-packet slot table, so the set is
// fixed at compile time. ProtocolCount is not a valid kind.
type ProtocolKind uint8

const (
	ProtoLink ProtocolKind = iota
	ProtoIP
	ProtoUDP
	ProtoTCP
	ProtoTLS
	ProtoWS
	ProtoSIP
	ProtoSDP
	ProtoRTP
	ProtoRTCP
	ProtoHEP
	// ProtocolCount is the number of known protocol kinds.
	ProtocolCount
)

var protocolNames = [ProtocolCount]string{
	ProtoLink: "link",
	ProtoIP:   "ip",
	ProtoUDP:  "udp",
	ProtoTCP:  "tcp",
	ProtoTLS:  "tls",
	ProtoWS:   "ws",
	ProtoSIP:  "sip",
	ProtoSDP:  "sdp",
	ProtoRTP:  "rtp",
	ProtoRTCP: "rtcp",
	ProtoHEP:  "hep",
}

func (k ProtocolKind) String() string {
	if k >= ProtocolCount {
		return "unknown"
	}
	return protocolNames[k]
}

// Valid reports whether k is a known protocol kind.
func (k ProtocolKind) Valid() bool {
	return k < ProtocolCount
}
