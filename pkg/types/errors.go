package types

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors, wrapped by *ValidationError.
var (
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrEmptyItem      = errors.New("item name must not be empty")
	ErrInvalidLimit   = errors.New("limit must be positive")
	ErrEmptyRecipient = errors.New("recipient address must not be empty")
)

// Operation errors.
var (
	ErrRemoteAPI     = errors.New("remote api error")
	ErrDetailFetch   = errors.New("recipe detail fetch failed")
	ErrMissingConfig = errors.New("missing configuration")
	ErrEmptyPantry   = errors.New("no ingredients found in pantry")
)

// ValidationError reports user input that does not meet the expected shape.
// Recoverable by asking again.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// RemoteAPIError reports a failed call to an external API. StatusCode is zero
// when the request never got a response.
type RemoteAPIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteAPIError) Unwrap() []error { return []error{ErrRemoteAPI, e.Err} }

// DetailFetchError reports a failed lookup of one recipe's detail.
type DetailFetchError struct {
	RecipeID int
	Err      error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("fetch recipe %d: %v", e.RecipeID, e.Err)
}

func (e *DetailFetchError) Unwrap() []error { return []error{ErrDetailFetch, e.Err} }

// ConfigurationError lists required settings that are not set.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingConfig, strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Unwrap() error { return ErrMissingConfig }

// IsUserError reports whether err is caused by input or configuration the
// user can fix, as opposed to a system failure.
func IsUserError(err error) bool {
	var ve *ValidationError
	var ce *ConfigurationError
	return errors.As(err, &ve) || errors.As(err, &ce) || errors.Is(err, ErrEmptyPantry)
}
