// Package glog provides a configurable logger shared across the pallas
// packages.
//
// The root logger defined by default uses github.com/rs/zerolog with a
// console writer, following the same pattern as gnark's logger package:
// one process-wide logger, overridable by an embedding application, quiet
// during `go test` runs unless PALLAS_DEBUG is set.
package glog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

// Debug, set from PALLAS_DEBUG, keeps the logger enabled inside `go test`
// binaries, which otherwise get a no-op logger. Outside tests it has no
// effect. It mirrors gnark's build-tag debug flag but is a runtime switch
// here, since the pallas core has no compile-time debug build.
var Debug = os.Getenv("PALLAS_DEBUG") != ""

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if !Debug && strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set allows an embedding application to override the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable disables logging entirely.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns a sub-logger for a component.
func Logger() zerolog.Logger {
	return logger
}
