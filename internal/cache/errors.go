package cache

import "errors"

// ErrLocalStorage marks every failure originating in the local cache
// database (write errors, serialization failures). Callers classify it
// separately from network failures.
var ErrLocalStorage = errors.New("local storage error")
