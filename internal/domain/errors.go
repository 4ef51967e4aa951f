package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage       = errors.New("message text is empty")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StorageError marks a persistence failure. Unlike generation or
// classification failures it is never absorbed: a chat turn that cannot be
// durably recorded must surface as a hard error to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
