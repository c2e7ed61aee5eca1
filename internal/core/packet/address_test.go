package packet

import (
	"errors"
	"net/netip"
	"testing"

	"firestige.xyz/strix/internal/core"
)

var (
	testSrcIP = netip.MustParseAddr("192.168.1.10")
	testDstIP = netip.MustParseAddr("10.0.0.20")
)

func newIPPacket(t *testing.T) *Packet {
	t.Helper()
	p := New(nil, nil)
	err := p.SetData(core.ProtoIP, &core.IPData{
		Version: 4,
		SrcIP:   testSrcIP,
		DstIP:   testDstIP,
	})
	if err != nil {
		t.Fatalf("SetData(ip) failed: %v", err)
	}
	return p
}

func TestSrcAddressUDP(t *testing.T) {
	p := newIPPacket(t)
	defer p.Unref()

	if err := p.SetData(core.ProtoUDP, &core.UDPData{SrcPort: 5060, DstPort: 5062}); err != nil {
		t.Fatalf("SetData(udp) failed: %v", err)
	}
	p.Seal()

	addr, err := p.SrcAddress()
	if err != nil {
		t.Fatalf("SrcAddress failed: %v", err)
	}
	want := core.NewAddress(testSrcIP, 5060)
	if !addr.Equal(want) {
		t.Errorf("expected %s, got %s", want, addr)
	}

	// Memoization idempotence: repeated calls return the same value.
	again, err := p.SrcAddress()
	if err != nil {
		t.Fatalf("second SrcAddress failed: %v", err)
	}
	if !again.Equal(addr) {
		t.Errorf("expected stable address, got %s then %s", addr, again)
	}
}

func TestDstAddressTCP(t *testing.T) {
	// TCP-only packet: the destination port must come from the TCP slot.
	p := newIPPacket(t)
	defer p.Unref()

	if err := p.SetData(core.ProtoTCP, &core.TCPData{SrcPort: 33000, DstPort: 5060}); err != nil {
		t.Fatalf("SetData(tcp) failed: %v", err)
	}
	p.Seal()

	addr, err := p.DstAddress()
	if err != nil {
		t.Fatalf("DstAddress failed: %v", err)
	}
	want := core.NewAddress(testDstIP, 5060)
	if !addr.Equal(want) {
		t.Errorf("expected %s, got %s", want, addr)
	}
}

func TestAddressUDPPreferredOverTCP(t *testing.T) {
	// When both transport slots are present the UDP ports win.
	p := newIPPacket(t)
	defer p.Unref()

	if err := p.SetData(core.ProtoUDP, &core.UDPData{SrcPort: 4000, DstPort: 4001}); err != nil {
		t.Fatalf("SetData(udp) failed: %v", err)
	}
	if err := p.SetData(core.ProtoTCP, &core.TCPData{SrcPort: 5000, DstPort: 5001}); err != nil {
		t.Fatalf("SetData(tcp) failed: %v", err)
	}
	p.Seal()

	src, err := p.SrcAddress()
	if err != nil {
		t.Fatalf("SrcAddress failed: %v", err)
	}
	if src.Port != 4000 {
		t.Errorf("expected UDP source port 4000, got %d", src.Port)
	}

	dst, err := p.DstAddress()
	if err != nil {
		t.Fatalf("DstAddress failed: %v", err)
	}
	if dst.Port != 4001 {
		t.Errorf("expected UDP destination port 4001, got %d", dst.Port)
	}
}

func TestAddressMissingIPLayer(t *testing.T) {
	p := New(nil, nil)
	defer p.Unref()

	if err := p.SetData(core.ProtoUDP, &core.UDPData{SrcPort: 1, DstPort: 2}); err != nil {
		t.Fatalf("SetData(udp) failed: %v", err)
	}
	p.Seal()

	if _, err := p.SrcAddress(); !errors.Is(err, core.ErrMissingIPLayer) {
		t.Errorf("expected ErrMissingIPLayer, got %v", err)
	}
	if _, err := p.DstAddress(); !errors.Is(err, core.ErrMissingIPLayer) {
		t.Errorf("expected ErrMissingIPLayer, got %v", err)
	}
}

func TestAddressMissingTransportLayer(t *testing.T) {
	p := newIPPacket(t)
	defer p.Unref()
	p.Seal()

	if _, err := p.SrcAddress(); !errors.Is(err, core.ErrMissingTransportLayer) {
		t.Errorf("expected ErrMissingTransportLayer, got %v", err)
	}
	if _, err := p.DstAddress(); !errors.Is(err, core.ErrMissingTransportLayer) {
		t.Errorf("expected ErrMissingTransportLayer, got %v", err)
	}

	// A failed resolution must not be memoized: installing a transport
	// layer on an unsealed packet afterwards is not a supported sequence,
	// but the failure path must leave no cached address behind.
	if _, err := p.SrcAddress(); !errors.Is(err, core.ErrMissingTransportLayer) {
		t.Errorf("expected ErrMissingTransportLayer on retry, got %v", err)
	}
}
