package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"firestige.xyz/strix/internal/capture"
	"firestige.xyz/strix/internal/config"
	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/dissect"
	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/sink"
	"firestige.xyz/strix/internal/sink/console"
	"firestige.xyz/strix/internal/sink/ws"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Dissect a capture file and stream the result to the sinks",
	Long: `
Start reading the configured capture file, dissect every frame and hand
the sealed packets to the configured sinks.

Examples:
  strix start                 # use ./config.yml
  strix start -c strix.yml    # use an explicit config file
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if err := log.Init(cfg.Log); err != nil {
			return err
		}
		return run(cfg)
	},
}

func run(cfg *config.Config) error {
	logger := log.GetLogger()

	sinks, err := buildSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				logger.WithError(err).Warn("sink close failed")
			}
		}
	}()

	source, err := capture.OpenFile(cfg.Capture.File)
	if err != nil {
		return err
	}
	defer source.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := dissect.NewDefaultRegistry(logger)
	pump := capture.NewPump(source, registry, logger)

	logger.WithField("origin", source.Origin().String()).Info("capture started")
	return pump.Run(ctx, func(pkt *packet.Packet) {
		for _, s := range sinks {
			s.Consume(pkt)
		}
	})
}

func buildSinks(cfg *config.Config, logger log.Logger) ([]sink.Sink, error) {
	sinks := make([]sink.Sink, 0, len(cfg.Sinks))
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "console":
			var opts config.ConsoleSinkOptions
			if err := sc.DecodeOptions(&opts); err != nil {
				return nil, err
			}
			sinks = append(sinks, console.NewSink(os.Stdout, opts.Verbose))
		case "ws":
			var opts config.WSSinkOptions
			if err := sc.DecodeOptions(&opts); err != nil {
				return nil, err
			}
			if opts.Listen == "" {
				opts.Listen = "127.0.0.1:8844"
			}
			sinks = append(sinks, ws.NewSink(opts.Listen, logger))
		default:
			return nil, fmt.Errorf("unknown sink type %q", sc.Type)
		}
	}
	return sinks, nil
}
