package dissect

import (
	"fmt"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/log"
)

// Chain walks the registered dissectors in layer order, starting at the
// link layer, letting each dissector pick its successor from the payload
// it leaves behind.
type Chain struct {
	registry *Registry
	log      log.Logger
}

func NewChain(registry *Registry, logger log.Logger) *Chain {
	return &Chain{
		registry: registry,
		log:      logger,
	}
}

// Run dissects one frame's bytes into pkt, beginning at the link layer.
// The packet is left unsealed; the caller seals after the last frame.
func (c *Chain) Run(pkt *packet.Packet, data []byte) error {
	return c.RunFrom(pkt, core.ProtoLink, data)
}

// RunFrom dissects starting at an arbitrary layer. Capture sources that
// strip L2 (raw IP pcaps) start at ProtoIP.
func (c *Chain) RunFrom(pkt *packet.Packet, kind core.ProtocolKind, data []byte) error {
	for kind != KindNone && len(data) > 0 {
		d, ok := c.registry.Get(kind)
		if !ok {
			if c.log.IsTraceEnabled() {
				c.log.Tracef("no dissector for %s, stopping chain", kind)
			}
			return nil
		}
		next, payload, err := d.Dissect(pkt, data)
		if err != nil {
			return fmt.Errorf("dissect %s: %w", kind, err)
		}
		kind, data = next, payload
	}
	return nil
}
