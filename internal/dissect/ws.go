package dissect

import (
	"bytes"
	"encoding/binary"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

const (
	wsOpContinuation = 0x0
	wsOpText         = 0x1
	wsOpBinary       = 0x2
	wsOpClose        = 0x8
	wsOpPing         = 0x9
	wsOpPong         = 0xA
)

var wsUpgradeHeader = []byte("Sec-WebSocket-Key")

// wsDissector recognizes a WebSocket layer over TCP: either the HTTP
// upgrade handshake or a single data frame whose declared length matches
// the payload exactly. Frame payloads (SIP over WS, RFC 7118) continue to
// the SIP dissector; unrecognized data falls through to SIP untouched.
type wsDissector struct{}

func newWSDissector() *wsDissector {
	return &wsDissector{}
}

func (d *wsDissector) Kind() core.ProtocolKind {
	return core.ProtoWS
}

func (d *wsDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	if isWSUpgrade(data) {
		err := pkt.SetData(core.ProtoWS, &core.WSData{Upgrade: true})
		if err != nil {
			return KindNone, nil, err
		}
		return KindNone, nil, nil
	}

	payload, opcode, masked, ok := decodeWSFrame(data)
	if !ok {
		return core.ProtoSIP, data, nil
	}

	err := pkt.SetData(core.ProtoWS, &core.WSData{
		OpCode: opcode,
		Masked: masked,
	})
	if err != nil {
		return KindNone, nil, err
	}
	if opcode == wsOpText || opcode == wsOpBinary {
		return core.ProtoSIP, payload, nil
	}
	return KindNone, nil, nil
}

func (d *wsDissector) TeardownData(pkt *packet.Packet) {}

func isWSUpgrade(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("GET ")) && !bytes.HasPrefix(data, []byte("HTTP/1.1 101")) {
		return false
	}
	return bytes.Contains(data, wsUpgradeHeader)
}

// decodeWSFrame parses one WebSocket frame header and returns its
// unmasked payload. The declared payload length must account for the
// whole buffer, which keeps random TCP payloads from matching.
func decodeWSFrame(data []byte) (payload []byte, opcode uint8, masked bool, ok bool) {
	if len(data) < 2 {
		return nil, 0, false, false
	}

	opcode = data[0] & 0x0F
	switch opcode {
	case wsOpContinuation, wsOpText, wsOpBinary, wsOpClose, wsOpPing, wsOpPong:
	default:
		return nil, 0, false, false
	}
	// RSV bits must be zero without negotiated extensions.
	if data[0]&0x70 != 0 {
		return nil, 0, false, false
	}

	masked = data[1]&0x80 != 0
	length := uint64(data[1] & 0x7F)
	offset := 2

	switch length {
	case 126:
		if len(data) < offset+2 {
			return nil, 0, false, false
		}
		length = uint64(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
	case 127:
		if len(data) < offset+8 {
			return nil, 0, false, false
		}
		length = binary.BigEndian.Uint64(data[offset : offset+8])
		offset += 8
	}

	var maskKey [4]byte
	if masked {
		if len(data) < offset+4 {
			return nil, 0, false, false
		}
		copy(maskKey[:], data[offset:offset+4])
		offset += 4
	}

	if uint64(len(data)-offset) != length {
		return nil, 0, false, false
	}

	payload = data[offset:]
	if masked {
		unmasked := make([]byte, len(payload))
		for i := range payload {
			unmasked[i] = payload[i] ^ maskKey[i%4]
		}
		payload = unmasked
	}
	return payload, opcode, masked, true
}
