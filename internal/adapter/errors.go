package adapter

import (
	"errors"
	"fmt"
)

// Transport-level error sentinels. The service layer maps these onto its
// user-facing classification; they deliberately stay close to the wire.
var (
	// ErrNoToken is returned when a call that requires authentication is
	// made before any session token has been set. It is distinct from a
	// server-side rejection (ErrUnauthorized).
	ErrNoToken = errors.New("no session token")

	// ErrUnauthorized is returned when the server rejects the session
	// token (expired, invalid, or wrong credentials on login).
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned when the requested course, material, or
	// attachment does not exist on the server.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidResponse is returned when the server answers with a
	// body that cannot be decoded into the expected shape.
	ErrInvalidResponse = errors.New("invalid server response")

	// ErrNetwork is returned when the request never produced an HTTP
	// response (DNS failure, refused connection, timeout).
	ErrNetwork = errors.New("network unavailable")
)

// ServerError reports a server-side failure with its HTTP status code
// preserved for classification and logging.
type ServerError struct {
	Code int
	Body string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error: http %d", e.Code)
	}
	return fmt.Sprintf("server error: http %d: %s", e.Code, e.Body)
}
