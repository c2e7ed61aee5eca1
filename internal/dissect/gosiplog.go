package dissect

import (
	gosiplog "github.com/ghettovoice/gosip/log"

	"firestige.xyz/strix/internal/log"
)

// gosipLogger adapts our Logger to the interface the gosip parser wants.
type gosipLogger struct {
	logger log.Logger
}

func newGosipLogger(logger log.Logger) *gosipLogger {
	return &gosipLogger{logger: logger}
}

func (g *gosipLogger) Fields() gosiplog.Fields {
	return gosiplog.Fields{}
}

func (g *gosipLogger) WithFields(fields map[string]interface{}) gosiplog.Logger {
	return &gosipLogger{logger: g.logger.WithFields(fields)}
}

func (g *gosipLogger) Prefix() string {
	return ""
}

func (g *gosipLogger) WithPrefix(prefix string) gosiplog.Logger {
	return g
}

func (g *gosipLogger) Print(args ...interface{}) {
	g.logger.Print(args...)
}

func (g *gosipLogger) Printf(format string, args ...interface{}) {
	g.logger.Printf(format, args...)
}

func (g *gosipLogger) Trace(args ...interface{}) {
	g.logger.Trace(args...)
}

func (g *gosipLogger) Tracef(format string, args ...interface{}) {
	g.logger.Tracef(format, args...)
}

func (g *gosipLogger) Debug(args ...interface{}) {
	g.logger.Debug(args...)
}

func (g *gosipLogger) Debugf(format string, args ...interface{}) {
	g.logger.Debugf(format, args...)
}

func (g *gosipLogger) Info(args ...interface{}) {
	g.logger.Info(args...)
}

func (g *gosipLogger) Infof(format string, args ...interface{}) {
	g.logger.Infof(format, args...)
}

func (g *gosipLogger) Warn(args ...interface{}) {
	g.logger.Warn(args...)
}

func (g *gosipLogger) Warnf(format string, args ...interface{}) {
	g.logger.Warnf(format, args...)
}

func (g *gosipLogger) Error(args ...interface{}) {
	g.logger.Error(args...)
}

func (g *gosipLogger) Errorf(format string, args ...interface{}) {
	g.logger.Errorf(format, args...)
}

func (g *gosipLogger) Fatal(args ...interface{}) {
	g.logger.Fatal(args...)
}

func (g *gosipLogger) Fatalf(format string, args ...interface{}) {
	g.logger.Fatalf(format, args...)
}

func (g *gosipLogger) Panic(args ...interface{}) {
	g.logger.Panic(args...)
}

func (g *gosipLogger) Panicf(format string, args ...interface{}) {
	g.logger.Panicf(format, args...)
}

func (g *gosipLogger) SetLevel(level uint32) {}
