package histogram

import "fmt"

// ConfigurationError reports a requested field that the input series does
// not carry.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("field %q not found in series", e.Field)
}

// InsufficientDataError reports a series with no rows to bin.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	if e.Reason == "" {
		return "series has no rows"
	}
	return e.Reason
}
