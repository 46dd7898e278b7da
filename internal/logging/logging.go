// Package logging builds the zap logger used by the CLI.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the level and format of the CLI logger.
type Options struct {
	Verbose bool
	// JSON switches the console encoder for a JSON one.
	JSON bool
}

// New builds a logger writing to w, normally the command's stderr.
// Warnings and errors are always shown; debug output only with Verbose.
func New(w io.Writer, opts Options) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	if !opts.Verbose {
		enc.CallerKey = ""
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		enc.TimeKey = "timestamp"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(enc)
	} else {
		encoder = zapcore.NewConsoleEncoder(enc)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), levelFor(opts))
	logOpts := []zap.Option{zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(w)))}
	if opts.Verbose {
		logOpts = append(logOpts, zap.AddCaller())
	}
	return zap.New(core, logOpts...)
}

func levelFor(opts Options) zapcore.Level {
	if opts.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}
