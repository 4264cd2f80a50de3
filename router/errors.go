package router

import (
	"errors"
	"fmt"
)

// ErrRouterNotInitialized is matched by every error returned before CreateRouter.
var ErrRouterNotInitialized = errors.New("router not initialized")

// NotInitializedError reports a router call made before CreateRouter or after
// ResetRouter. It always indicates a call order bug in the application.
type NotInitializedError struct {
	Op string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s: the router was not initialized using CreateRouter", e.Op)
}

func (e *NotInitializedError) Is(target error) bool {
	if target == ErrRouterNotInitialized {
		return true
	}

	_, ok := target.(*NotInitializedError)

	return ok
}
