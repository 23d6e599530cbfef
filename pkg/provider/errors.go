package provider

import "fmt"

// ConfigError reports an unusable backend selection: an unknown provider id
// or a missing required credential. It is raised before any generation call
// runs and is never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() (msg string) {
	msg = "provider configuration error: " + e.Reason
	return msg
}

// BackendError reports a failed generation call. It carries the provider
// identity and the underlying cause so callers see both in one message.
// Backend failures are never retried by the abstraction itself.
type BackendError struct {
	Provider string
	Err      error
}

func (e *BackendError) Error() (msg string) {
	msg = fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
	return msg
}

func (e *BackendError) Unwrap() (err error) {
	err = e.Err
	return err
}
