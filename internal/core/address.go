// Package core defines core data types.
package core

import (
	"net/netip"
	"strconv"
)

// Address identifies one side of a transport-layer conversation.
// Immutable once constructed.
type Address struct {
	Host netip.Addr
	Port uint16
}

// NewAddress builds an Address from an IP host and a transport port.
func NewAddress(host netip.Addr, port uint16) Address {
	return Address{Host: host, Port: port}
}

// Equal reports whether two addresses have the same host and port.
func (a Address) Equal(b Address) bool {
	return a.Host == b.Host && a.Port == b.Port
}

func (a Address) String() string {
	if !a.Host.IsValid() {
		return "invalid:" + strconv.Itoa(int(a.Port))
	}
	return netip.AddrPortFrom(a.Host, a.Port).String()
}
