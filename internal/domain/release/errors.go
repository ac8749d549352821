package release

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid release configuration")

var (
	errRequired          = errors.New("value is required")
	errUnknownFramework  = errors.New("unknown framework")
	errBadMSIBitness     = errors.New("msi bitness must be x86 or x64")
	errNoSignPlaceholder = errors.New("sign template has no " + SignTemplatePlaceholder + " placeholder")
)

// ConfigurationError reports a release option that cannot be forwarded to Squirrel.
type ConfigurationError struct {
	// Field is the option name as it appears on the Squirrel command line.
	Field string
	// Err describes what is wrong with the value.
	Err error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrConfiguration, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configurationError(field string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Err: err}
}
