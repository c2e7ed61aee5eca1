// Package console prints packet summaries to a writer.
package console

import (
	"fmt"
	"io"
	"strings"

	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/sink"
)

type Sink struct {
	out     io.Writer
	verbose bool
}

func NewSink(out io.Writer, verbose bool) *Sink {
	return &Sink{out: out, verbose: verbose}
}

func (s *Sink) Consume(pkt *packet.Packet) {
	summary := sink.Summarize(pkt)

	line := fmt.Sprintf("%s %s %s -> %s", summary.Time, summary.Transport, summary.Src, summary.Dst)
	if summary.SIPMethod != "" {
		line += " " + summary.SIPMethod
	} else if summary.SIPStatus != 0 {
		line += fmt.Sprintf(" %d", summary.SIPStatus)
	}
	if s.verbose {
		line += fmt.Sprintf(" [%s] len=%d", strings.Join(summary.Layers, ","), summary.Length)
	}
	fmt.Fprintln(s.out, line)
}

func (s *Sink) Close() error {
	return nil
}
