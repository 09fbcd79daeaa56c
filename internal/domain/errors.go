package domain

import (
	"errors"
	"strings"
)

// ConfigError reports a harness configuration the run cannot start with.
// No mutation happens and no log is written when it is returned.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError

	return errors.As(err, &cfgErr)
}
