package config

import (
	"errors"
	"fmt"
)

// ErrNoBranchConfiguration is wrapped by a ConfigurationError when no branch
// pattern matches and no catch-all entry exists.
var ErrNoBranchConfiguration = errors.New("no branch configuration matches")

// ConfigurationError reports configuration that cannot resolve to concrete values.
// Key names the branch configuration entry, empty for global settings.
type ConfigurationError struct {
	Key   string
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Key != "" && e.Field != "":
		return fmt.Sprintf("configuration: branch %q: %s: %v", e.Key, e.Field, e.Err)
	case e.Key != "":
		return fmt.Sprintf("configuration: branch %q: %v", e.Key, e.Err)
	case e.Field != "":
		return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("configuration: %v", e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func fieldError(key, field string, err error) *ConfigurationError {
	return &ConfigurationError{Key: key, Field: field, Err: err}
}
