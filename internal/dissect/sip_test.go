package dissect

import (
	"testing"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/log"
)

func TestSIPDissectorRequest(t *testing.T) {
	d := newSIPDissector(log.GetLogger())
	pkt := packet.New(nil, nil)
	defer pkt.Unref()

	next, _, err := d.Dissect(pkt, testInvite)
	if err != nil {
		t.Fatalf("Dissect failed: %v", err)
	}
	if next != KindNone {
		t.Errorf("expected chain to stop after SIP, got next=%s", next)
	}

	sip, ok := pkt.Data(core.ProtoSIP).(*core.SIPData)
	if !ok {
		t.Fatal("expected SIP slot present")
	}
	if !sip.IsRequest {
		t.Error("expected a request")
	}
	if sip.Method != "INVITE" {
		t.Errorf("expected method INVITE, got %q", sip.Method)
	}
	if sip.CallID != "a84b4c76e66710@pc33.example.com" {
		t.Errorf("unexpected Call-ID %q", sip.CallID)
	}
	if sip.StatusCode != 0 {
		t.Errorf("expected zero status code for a request, got %d", sip.StatusCode)
	}
}

func TestSIPDissectorResponse(t *testing.T) {
	response := []byte("SIP/2.0 200 OK\r\n" +
		"Via: SIP/2.0/UDP 192.168.1.10:5060;branch=z9hG4bK776asdhds\r\n" +
		"From: Alice <sip:alice@example.com>;tag=1928301774\r\n" +
		"To: Bob <sip:bob@example.com>;tag=a6c85cf\r\n" +
		"Call-ID: a84b4c76e66710@pc33.example.com\r\n" +
		"CSeq: 314159 INVITE\r\n" +
		"Content-Length: 0\r\n" +
		"\r\n")

	d := newSIPDissector(log.GetLogger())
	pkt := packet.New(nil, nil)
	defer pkt.Unref()

	if _, _, err := d.Dissect(pkt, response); err != nil {
		t.Fatalf("Dissect failed: %v", err)
	}

	sip, ok := pkt.Data(core.ProtoSIP).(*core.SIPData)
	if !ok {
		t.Fatal("expected SIP slot present")
	}
	if sip.IsRequest {
		t.Error("expected a response")
	}
	if sip.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", sip.StatusCode)
	}
}

func TestSIPDissectorGarbage(t *testing.T) {
	d := newSIPDissector(log.GetLogger())
	pkt := packet.New(nil, nil)
	defer pkt.Unref()

	next, payload, err := d.Dissect(pkt, []byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("Dissect failed: %v", err)
	}
	if next != KindNone || payload != nil {
		t.Error("expected chain to stop on unrecognized payload")
	}
	if pkt.Has(core.ProtoSIP) {
		t.Error("garbage must not install a SIP slot")
	}
}
