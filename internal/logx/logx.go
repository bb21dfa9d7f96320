// Package logx provides the process-wide logger shared by every analysis
// component: the worklist solvers, the CHA call-graph builder and the
// pointer-analysis engine trace through it at debug level.
package logx

import (
	"io"
	"log"
	"os"
)

var (
	// Logger is the shared logger. Tests may redirect it with SetOutput.
	Logger *log.Logger

	// Verbose gates Debugf/Infof/Warnf. Errorf always prints.
	Verbose bool
)

func init() {
	Logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	Verbose = os.Getenv("GOFLOW_VERBOSE") == "1"
}

// SetVerbose enables or disables verbose logging at runtime.
func SetVerbose(enabled bool) {
	Verbose = enabled
}

// SetOutput redirects logger output (used by tests).
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func Debugf(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[DEBUG] "+format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[INFO] "+format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[WARN] "+format, args...)
	}
}

// Errorf always prints, regardless of verbose mode.
func Errorf(format string, args ...interface{}) {
	Logger.Printf("[ERROR] "+format, args...)
}
