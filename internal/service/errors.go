package service

import "errors"

// ErrorKind is the stable failure taxonomy. Classification into a
// user-facing message is presentational only; the kind stays available
// for tests and callers.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindServerError        ErrorKind = "server_error"
	KindInvalidResponse    ErrorKind = "invalid_response"
	KindNotFound           ErrorKind = "not_found"
	KindNoCoursesToSync    ErrorKind = "no_courses_to_sync"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindLocalStorage       ErrorKind = "local_storage"
	KindUnclassified       ErrorKind = "unclassified"
)

// ErrNoCoursesToSync is raised by the orchestrator when the refreshed
// course list comes back empty.
var ErrNoCoursesToSync = errors.New("no courses to sync")

// ClassifiedError pairs a failure kind with a short user-facing message
// while keeping the underlying error reachable via Unwrap.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ClassifiedError) Error() string {
	return e.Message
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}
