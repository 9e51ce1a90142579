// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package service

import (
	"errors"
	"fmt"

	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/cache"
)

// classify translates a transport or storage error into a [ClassifiedError]
// with a short user-facing message. The original error stays wrapped so
// callers and tests can still inspect the underlying kind.
func classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	var serverErr *adapter.ServerError

	switch {
	case errors.Is(err, adapter.ErrNoToken), errors.Is(err, adapter.ErrUnauthorized):
		return &ClassifiedError{Kind: KindUnauthenticated, Message: "sign in to continue", Err: err}

	case errors.Is(err, adapter.ErrNotFound):
		return &ClassifiedError{Kind: KindNotFound, Message: "not found on server", Err: err}

	case errors.Is(err, adapter.ErrInvalidResponse):
		return &ClassifiedError{Kind: KindInvalidResponse, Message: "unexpected server response", Err: err}

	case errors.Is(err, adapter.ErrNetwork):
		return &ClassifiedError{Kind: KindNetworkUnavailable, Message: "network unavailable", Err: err}

	case errors.Is(err, cache.ErrLocalStorage):
		return &ClassifiedError{Kind: KindLocalStorage, Message: "local storage error", Err: err}

	case errors.Is(err, ErrNoCoursesToSync):
		return &ClassifiedError{Kind: KindNoCoursesToSync, Message: "no courses to sync", Err: err}

	case errors.As(err, &serverErr):
		return &ClassifiedError{
			Kind:    KindServerError,
			Message: fmt.Sprintf("server error (%d)", serverErr.Code),
			Err:     err,
		}
	}

	return &ClassifiedError{Kind: KindUnclassified, Message: "something went wrong", Err: err}
}
