package serve

import "fmt"

// ConnectionError reports an I/O failure on accept, read, or write. It is
// scoped to one connection and never stops the accept loop.
type ConnectionError struct {
	Op  string // "accept", "read", "write", "listen"
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("serve: connection %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// SerializationError reports a structured-body encoding failure.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serve: serialize body: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error { return e.Err }
