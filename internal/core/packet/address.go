package packet

import "firestige.xyz/strix/internal/core"

// Address resolution derives (host, port) endpoints from the IP slot and
// whichever transport slot is present, UDP checked before TCP. Results are
// memoized on the packet: slots are immutable after dissection, so the
// first successful computation holds for the packet's lifetime. Callers
// must not resolve addresses before the packet is sealed.

// SrcAddress returns the packet's source endpoint.
func (p *Packet) SrcAddress() (core.Address, error) {
	if p.src != nil {
		return *p.src, nil
	}
	ip, ok := p.Data(core.ProtoIP).(*core.IPData)
	if !ok {
		return core.Address{}, core.ErrMissingIPLayer
	}

	var port uint16
	switch {
	case p.Has(core.ProtoUDP):
		udp := p.Data(core.ProtoUDP).(*core.UDPData)
		port = udp.SrcPort
	case p.Has(core.ProtoTCP):
		tcp := p.Data(core.ProtoTCP).(*core.TCPData)
		port = tcp.SrcPort
	default:
		return core.Address{}, core.ErrMissingTransportLayer
	}

	addr := core.NewAddress(ip.SrcIP, port)
	p.src = &addr
	return addr, nil
}

// DstAddress returns the packet's destination endpoint.
func (p *Packet) DstAddress() (core.Address, error) {
	if p.dst != nil {
		return *p.dst, nil
	}
	ip, ok := p.Data(core.ProtoIP).(*core.IPData)
	if !ok {
		return core.Address{}, core.ErrMissingIPLayer
	}

	var port uint16
	switch {
	case p.Has(core.ProtoUDP):
		udp := p.Data(core.ProtoUDP).(*core.UDPData)
		port = udp.DstPort
	case p.Has(core.ProtoTCP):
		tcp := p.Data(core.ProtoTCP).(*core.TCPData)
		port = tcp.DstPort
	default:
		return core.Address{}, core.ErrMissingTransportLayer
	}

	addr := core.NewAddress(ip.DstIP, port)
	p.dst = &addr
	return addr, nil
}
