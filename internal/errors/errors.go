// package errors contains the error kinds surfaced by the response
// body layer. all of them propagate to the immediate caller; nothing
// in this module downgrades a decode or framing failure to a warning.
package errors

import (
	"errors"
	"fmt"
)

// ErrNoFileDescriptor is returned by Fileno on bodies that are not
// backed by an OS-level handle, which is every body this package
// constructs.
var ErrNoFileDescriptor = errors.New("response body is not backed by a file descriptor")

// DecodeError reports that the body could not be decoded as the
// format named by the Content-Encoding header. It is fatal: once a
// decoder has failed it is never retried with a different format.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %q response body: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolError reports a violation of the transfer framing beneath
// the body, e.g. malformed chunk syntax from the chunked bridge.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return "protocol error: " + e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// InvalidHeader reports a header whose value cannot be used as
// declared.
type InvalidHeader struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidHeader) Error() string {
	return fmt.Sprintf("invalid header %s: %q: %s", e.Name, e.Value, e.Reason)
}
