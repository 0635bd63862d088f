package genimage

import "fmt"

// ConfigurationError reports a generation request the resolver cannot
// honor: unknown preset or device, or a non-positive numeric parameter.
// The caller must fix the request; nothing external has run yet.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("generation config: %s: %s", e.Param, e.Reason)
}

// ExternalServiceError wraps a failure from the generation runtime
// (model download, out of memory, device unavailable). It is forwarded
// unmodified: this layer neither retries nor interprets it.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("generation service: %s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
