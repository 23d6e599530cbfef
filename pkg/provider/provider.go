// Package provider holds the generation backend abstraction and its vendor
// adapters. Adapters are thin request issuers with no business logic; each
// translates one generic generation request into a vendor call.
package provider

import "context"

const (
	// DefaultTemperature is used when a call supplies no temperature.
	DefaultTemperature = 0.7
	// DefaultMaxTokens is used when a call supplies no output length cap.
	DefaultMaxTokens = 4096
)

// Options control a single generation call. Zero values fall back to the
// package defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// withDefaults fills unset option fields.
func (o Options) withDefaults() (opts Options) {
	opts = o
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return opts
}

// Provider is the uniform capability implemented by every backend adapter.
type Provider interface {
	// Generate produces text for the given prompt. Any failure surfaces as
	// a *BackendError naming the provider and the underlying cause.
	Generate(ctx context.Context, prompt string, opts Options) (text string, err error)

	// CheckConnectivity reports whether the backend is reachable. It never
	// returns an error; false is the only unavailability signal. Intended
	// for status display, not control flow.
	CheckConnectivity(ctx context.Context) (ok bool)

	// Name identifies the provider for error messages and status display.
	Name() (name string)
}
