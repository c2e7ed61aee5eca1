package console

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
)

func testPacket(t *testing.T) *packet.Packet {
	t.Helper()
	p := packet.New(nil, nil)
	if err := p.SetData(core.ProtoIP, &core.IPData{
		Version: 4,
		SrcIP:   netip.MustParseAddr("192.168.1.10"),
		DstIP:   netip.MustParseAddr("10.0.0.20"),
	}); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if err := p.SetData(core.ProtoUDP, &core.UDPData{SrcPort: 5060, DstPort: 5060}); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if err := p.SetData(core.ProtoSIP, &core.SIPData{IsRequest: true, Method: "REGISTER"}); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if err := p.AppendFrame(&packet.Frame{Timestamp: 2500000, CaptureLen: 100}); err != nil {
		t.Fatalf("AppendFrame failed: %v", err)
	}
	p.Seal()
	return p
}

func TestConsoleSink(t *testing.T) {
	p := testPacket(t)
	defer p.Unref()

	var buf bytes.Buffer
	s := NewSink(&buf, false)
	s.Consume(p)

	line := buf.String()
	for _, want := range []string{"2.500000", "UDP", "192.168.1.10:5060", "10.0.0.20:5060", "REGISTER"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected output to contain %q, got %q", want, line)
		}
	}
	if strings.Contains(line, "len=") {
		t.Error("non-verbose output must not include layer detail")
	}
}

func TestConsoleSinkVerbose(t *testing.T) {
	p := testPacket(t)
	defer p.Unref()

	var buf bytes.Buffer
	s := NewSink(&buf, true)
	s.Consume(p)

	line := buf.String()
	for _, want := range []string{"[ip,udp,sip]", "len=100"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected verbose output to contain %q, got %q", want, line)
		}
	}
}
