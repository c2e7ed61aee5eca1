package dissect

import (
	"bytes"

	"github.com/ghettovoice/gosip/sip"
	"github.com/ghettovoice/gosip/sip/parser"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/log"
)

var sipVersionToken = []byte("SIP/2.0")

// sipDissector parses SIP messages with the gosip packet parser.
type sipDissector struct {
	delegate *parser.PacketParser
	log      log.Logger
}

func newSIPDissector(logger log.Logger) *sipDissector {
	return &sipDissector{
		delegate: parser.NewPacketParser(newGosipLogger(logger)),
		log:      logger,
	}
}

func (d *sipDissector) Kind() core.ProtocolKind {
	return core.ProtoSIP
}

func (d *sipDissector) Dissect(pkt *packet.Packet, data []byte) (core.ProtocolKind, []byte, error) {
	if !looksLikeSIP(data) {
		return KindNone, nil, nil
	}

	msg, err := d.delegate.ParseMessage(data)
	if err != nil {
		if d.log.IsDebugEnabled() {
			d.log.WithError(err).Debugf("discarding unparseable SIP payload (%d bytes)", len(data))
		}
		return KindNone, nil, nil
	}

	sipData := &core.SIPData{
		Headers: make(map[string]string),
		Body:    []byte(msg.Body()),
	}
	for _, h := range msg.Headers() {
		sipData.Headers[h.Name()] = h.Value()
	}
	sipData.CallID = sipData.Headers["Call-ID"]
	if req, ok := msg.(sip.Request); ok {
		sipData.IsRequest = true
		sipData.Method = string(req.Method())
	}
	if res, ok := msg.(sip.Response); ok {
		sipData.StatusCode = int(res.StatusCode())
	}

	if err := pkt.SetData(core.ProtoSIP, sipData); err != nil {
		return KindNone, nil, err
	}
	return KindNone, nil, nil
}

func (d *sipDissector) TeardownData(pkt *packet.Packet) {}

// looksLikeSIP is a cheap pre-filter: the start line of any SIP message
// carries the version token.
func looksLikeSIP(data []byte) bool {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	return bytes.Contains(line, sipVersionToken)
}
