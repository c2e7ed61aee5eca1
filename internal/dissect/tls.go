package dissect

import (
	"encoding/binary"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

const (
	tlsRecordHeaderLen = 5
	// TLS record content types
	tlsChangeCipherSpec = 20
	tlsAlert            = 21
	tlsHandshake        = 22
	tlsApplicationData  = 23
	// Records larger than 2^14 + 2048 are invalid per RFC 8446.
	tlsMaxRecordLen = 1<<14 + 2048
)

// tlsDissector recognizes TLS record framing over a TCP payload. Records
// stay encrypted; only the framing is inspected. Unrecognized payloads
// fall through to the WebSocket heuristic untouched.
type tlsDissector struct{}

func newTLSDissector() *tlsDissector {
	return &tlsDissector{}
}

func (d *tlsDissector) Kind() core.ProtocolKind {
	return core.ProtoTLS
}

func (d *tlsDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	if !looksLikeTLS(data) {
		return core.ProtoWS, data, nil
	}

	err := pkt.SetData(core.ProtoTLS, &core.TLSData{
		Version:     binary.BigEndian.Uint16(data[1:3]),
		ContentType: data[0],
		Handshake:   data[0] == tlsHandshake,
	})
	if err != nil {
		return KindNone, nil, err
	}
	// Encrypted payload, nothing further to dissect.
	return KindNone, nil, nil
}

func (d *tlsDissector) TeardownData(pkt *packet.Packet) {}

// looksLikeTLS checks the first record header: a known content type, an
// SSL3/TLS record version, and a sane record length.
func looksLikeTLS(data []byte) bool {
	if len(data) < tlsRecordHeaderLen {
		return false
	}
	if data[0] < tlsChangeCipherSpec || data[0] > tlsApplicationData {
		return false
	}
	if data[1] != 0x03 || data[2] > 0x04 {
		return false
	}
	recordLen := int(binary.BigEndian.Uint16(data[3:5]))
	return recordLen > 0 && recordLen <= tlsMaxRecordLen
}
