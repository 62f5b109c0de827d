package viewstate

import "fmt"

type ValidationErrorCode string

const (
	ErrKeyNotInView ValidationErrorCode = "KEY_NOT_IN_VIEW"
	ErrUnknownKey   ValidationErrorCode = "UNKNOWN_KEY"
	ErrUnknownView  ValidationErrorCode = "UNKNOWN_VIEW"
	ErrInvalidValue ValidationErrorCode = "INVALID_VALUE"
)

// ValidationError is returned, never panicked, when a state transition is
// not legal for the current view. The state is left unchanged.
type ValidationError struct {
	Code    ValidationErrorCode
	Key     FilterKey
	View    View
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ConfigError reports a registry that references undeclared views or keys.
// It indicates a configuration bug, not bad runtime data.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid view registry: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid view registry: %d problems: %v", len(e.Problems), e.Problems)
}
