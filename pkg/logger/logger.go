package logger

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the structured logger shared by the transaction details pipeline. It is
// implemented by go.uber.org/zap.SugaredLogger.
//
// Every component takes its logger by injection and names it after itself, e.g.
// lggr.Named("resolver"). Fields are passed as key value pairs, with "txId" and
// "requestId" naming the transaction and the HTTP request a line belongs to.
//
// Levels
//   - Error: a load or render failed and the caller was shown an error.
//   - Warn: an upstream misbehaved, e.g. the gateway answered 5xx or the details were missing.
//   - Info: lifecycle, e.g. the server started or stopped.
//   - Debug: absorbed failures and traces, e.g. a decoder failed or a stale load was dropped.
type Logger interface {
	// Name returns the dot separated name of the logger.
	Name() string
	// Named returns a child logger with name appended to the current name.
	Named(name string) Logger

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// NewWithLevel returns a JSON production Logger at the named level (debug, info, warn, error).
func NewWithLevel(level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &logger{core.Sugar()}, nil
}

// Test returns a console Logger writing debug and above to tb.
func Test(tb testing.TB) Logger {
	tb.Helper()

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zaptest.NewTestingWriter(tb), zapcore.DebugLevel)

	return &logger{zap.New(core).Sugar()}
}

// TestObserved is Test that also records entries at lvl and above for assertions.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()

	oCore, logs := observer.New(lvl)
	tee := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})

	return &logger{zaptest.NewLogger(tb, zaptest.WrapOptions(tee)).Sugar()}, logs
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) Name() string {
	return l.Desugar().Name()
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}
