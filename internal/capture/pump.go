package capture

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/dissect"
	"firestige.xyz/strix/internal/log"
)

// Pump drives one capture stream: it reads frames from a source, dissects
// each into a packet, seals it and hands it to the consumer. One pump per
// stream; a packet is never mutated after emit sees it.
type Pump struct {
	source   Source
	registry *dissect.Registry
	chain    *dissect.Chain
	log      log.Logger
}

func NewPump(source Source, registry *dissect.Registry, logger log.Logger) *Pump {
	return &Pump{
		source:   source,
		registry: registry,
		chain:    dissect.NewChain(registry, logger),
		log:      logger,
	}
}

// Run reads until the source is exhausted or ctx is cancelled. emit borrows
// the pump's reference for the duration of the call; consumers that retain
// the packet must Ref it themselves.
func (p *Pump) Run(ctx context.Context, emit func(*packet.Packet)) error {
	root, err := rootKind(p.source.LinkType())
	if err != nil {
		return err
	}

	count := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := p.source.ReadFrame()
		if errors.Is(err, io.EOF) {
			p.log.WithField("origin", p.source.Origin().String()).
				Infof("capture finished, %d packets", count)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		pkt := packet.New(p.source.Origin(), p.registry)
		if err := pkt.AppendFrame(frame); err != nil {
			pkt.Unref()
			return err
		}
		if err := p.chain.RunFrom(pkt, root, frame.Data); err != nil {
			// A malformed frame is data, not a pipeline failure.
			p.log.WithError(err).Debug("frame dissection failed")
		}
		pkt.Seal()
		count++

		emit(pkt)
		pkt.Unref()
	}
}

// rootKind maps the source link type to the first dissector in the chain.
func rootKind(lt layers.LinkType) (core.ProtocolKind, error) {
	switch lt {
	case layers.LinkTypeEthernet:
		return core.ProtoLink, nil
	case layers.LinkTypeRaw, layers.LinkTypeIPv4, layers.LinkTypeIPv6:
		return core.ProtoIP, nil
	default:
		return dissect.KindNone, fmt.Errorf("strix: unsupported link type %s", lt)
	}
}
