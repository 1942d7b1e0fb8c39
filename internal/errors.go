package internal

import "fmt"

// ConfigError represents a missing or unusable configuration value. It is
// raised before any request is attempted and blocks every gateway call.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config error: %s is not set", e.Field)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError represents a network failure or a non-2xx response from
// the orchestrator. Operations are abandoned on the first failure; there is
// no automatic retry.
type TransportError struct {
	Op     string // "list sessions", "create session", "send message", ...
	URL    string
	Status int    // 0 when the request never completed
	Body   string // truncated response body, when available
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: %s %s: status %d: %s", e.Op, e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError represents a response body that could not be decoded into the
// expected shape.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s: %v", e.Op, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
