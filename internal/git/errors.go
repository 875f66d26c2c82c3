package git

import (
	"errors"
	"fmt"
)

var (
	// ErrRefNotFound is wrapped when a branch, commit or HEAD cannot be found.
	ErrRefNotFound = errors.New("reference not found")
	// ErrNoHead is wrapped when HEAD does not resolve to a commit.
	ErrNoHead = errors.New("HEAD does not point to a commit")
)

// RepositoryStateError reports a missing ref or an unreadable history.
type RepositoryStateError struct {
	Ref string
	Err error
}

func (e *RepositoryStateError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("repository: %v", e.Err)
	}
	return fmt.Sprintf("repository: %s: %v", e.Ref, e.Err)
}

func (e *RepositoryStateError) Unwrap() error { return e.Err }

func stateError(ref string, err error) *RepositoryStateError {
	return &RepositoryStateError{Ref: ref, Err: err}
}
