package cocktail

import (
	"errors"
	"fmt"
	"net"
)

// EncodingError indicates a name could not be prepared for the query string.
type EncodingError struct {
	Name   string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cocktail: encoding %q: %s", e.Name, e.Reason)
}

// NetworkError indicates the request did not produce a successful response:
// the transport failed, or the server answered with a non-2xx status.
// StatusCode is zero when no response was received.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cocktail: network: server returned status %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("cocktail: network: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying transport error was a timeout.
func (e *NetworkError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// DecodeError indicates the response body did not match the expected schema.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cocktail: decode: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
