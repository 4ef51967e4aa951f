package generation

import (
	"context"
	"errors"
)

// Client executes one stateless completion against a generation backend.
// No session or context is carried between calls.
//
// Implementations must build errors that never embed the prompt or any
// credential material; error text can end up in a user-visible response.
type Client interface {
	Complete(ctx context.Context, input string) (string, error)
}

// ErrBackendFailed marks a backend that ran but reported failure: a nonzero
// process exit or an error reply from a remote model server.
var ErrBackendFailed = errors.New("generation backend reported failure")
