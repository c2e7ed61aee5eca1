// Package sink delivers finished packets to consumers.
package sink

import (
	"fmt"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

// Sink consumes sealed packets. Consume borrows the caller's reference; a
// sink that retains the packet past the call must Ref it.
type Sink interface {
	Consume(pkt *packet.Packet)
	Close() error
}

// Summary is the display projection of one packet.
type Summary struct {
	Time      string   `json:"time"`
	Src       string   `json:"src"`
	Dst       string   `json:"dst"`
	Transport string   `json:"transport"`
	Layers    []string `json:"layers"`
	SIPMethod string   `json:"sipMethod,omitempty"`
	SIPStatus int      `json:"sipStatus,omitempty"`
	CallID    string   `json:"callId,omitempty"`
	Length    uint32   `json:"length"`
}

// Summarize projects a sealed packet for display. Missing derived values
// render as "unknown" rather than failing the packet.
func Summarize(pkt *packet.Packet) Summary {
	s := Summary{
		Time:      "unknown",
		Src:       "unknown",
		Dst:       "unknown",
		Transport: pkt.Transport(),
	}

	if last, err := pkt.LastFrame(); err == nil {
		s.Time = fmt.Sprintf("%d.%06d", last.Seconds(), last.Microseconds())
		s.Length = last.CaptureLen
	}
	if src, err := pkt.SrcAddress(); err == nil {
		s.Src = src.String()
	}
	if dst, err := pkt.DstAddress(); err == nil {
		s.Dst = dst.String()
	}

	for kind := core.ProtocolKind(0); kind < core.ProtocolCount; kind++ {
		if pkt.Has(kind) {
			s.Layers = append(s.Layers, kind.String())
		}
	}

	if sip, ok := pkt.Data(core.ProtoSIP).(*core.SIPData); ok {
		s.SIPMethod = sip.Method
		s.SIPStatus = sip.StatusCode
		s.CallID = sip.CallID
	}
	return s
}
