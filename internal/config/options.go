// Package config is the CLI options layer and taint-config YAML loader; the
// core's own data model treats both as an external collaborator: the core
// consumes an already-parsed Options/taint.Config, never flag.FlagSet or
// YAML directly.
package config

import (
	"flag"
	"fmt"

	"github.com/1homsi/goflow/internal/context"
)

// Options is the flag set every cmd/goflow subcommand shares, one FlagSet
// per subcommand rather than a single global one.
type Options struct {
	// TaintConfig is a path to a taint-config YAML file; empty uses the
	// embedded profiles.FS default profile.
	TaintConfig string
	// PTAResult is the registry id of a previously stored pointer-analysis
	// result (the "Downstream analyses retrieve named results via
	// stable string IDs").
	PTAResult string
	// Context selects the context sensitivity: ci | k-call | k-obj | k-type.
	Context string
	// K is the context depth for k-call/k-obj; k-type always selects the
	// 1-type selector and ignores K.
	K int
	JSON    bool
	Verbose bool

	// Args holds the positional arguments left after flag parsing (for
	// every subcommand this module ships, a single program-JSON path).
	Args []string
}

// Parse parses args (the subcommand's argv, without the subcommand name
// itself) into Options.
func Parse(subcommand string, args []string) (*Options, error) {
	fs := flag.NewFlagSet(subcommand, flag.ContinueOnError)
	o := &Options{}
	fs.StringVar(&o.TaintConfig, "taint-config", "", "taint-config YAML file (default: embedded profile)")
	fs.StringVar(&o.PTAResult, "pta", "pta", "registry id of the pointer-analysis result to consume")
	fs.StringVar(&o.Context, "context", "ci", "context selector: ci|k-call|k-obj|k-type")
	fs.IntVar(&o.K, "k", 1, "k for k-call/k-obj context selectors (k-type is always 1-type)")
	fs.BoolVar(&o.JSON, "json", false, "JSON output")
	fs.BoolVar(&o.Verbose, "verbose", false, "enable verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.Args = fs.Args()
	return o, nil
}

// Selector resolves o.Context/o.K into a context.Selector, per the
// four named variants.
func (o *Options) Selector() (context.Selector, error) {
	switch o.Context {
	case "", "ci":
		return context.CI(), nil
	case "k-call":
		return context.Call(o.K), nil
	case "k-obj":
		return context.Obj(o.K), nil
	case "k-type":
		return context.Type1(), nil
	default:
		return nil, fmt.Errorf("config: unknown context selector %q (want ci|k-call|k-obj|k-type)", o.Context)
	}
}
