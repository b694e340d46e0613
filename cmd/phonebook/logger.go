package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. Entries go to logFile when set,
// otherwise to stderr. Below debug only warnings and errors are written so
// the menu stays readable. The returned func flushes and closes the output.
func newLogger(debug bool, logFile string, stderr io.Writer) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	out := zapcore.AddSync(stderr)
	closeOut := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = zapcore.AddSync(f)
		closeOut = func() { f.Close() }
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), out, level)
	logger := zap.New(core)

	return logger, func() {
		_ = logger.Sync()
		closeOut()
	}, nil
}
