package keyswap

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsafeKey indicates a key or token is reserved or contains control characters.
	ErrUnsafeKey = errors.New("unsafe key")

	// ErrCollision indicates a duplicate source key or two keys sharing a token.
	ErrCollision = errors.New("key collision")

	// ErrConfiguration indicates an invalid or incomplete option set.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrStructuralValidation indicates an input value holds an unsafe key somewhere.
	ErrStructuralValidation = errors.New("structural validation failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// UnsafeKeyError reports a key rejected by the safety rules.
type UnsafeKeyError struct {
	Key    string // Offending key or token
	Reason string // Which rule rejected it
	Role   string // What the key was being used as (key, token, prefix)
}

func (e *UnsafeKeyError) Error() string {
	role := e.Role
	if role == "" {
		role = "key"
	}
	return fmt.Sprintf("%s: %s %q %s", ErrUnsafeKey.Error(), role, e.Key, e.Reason)
}

func (e *UnsafeKeyError) Unwrap() error {
	return ErrUnsafeKey
}

// CollisionError reports a duplicate key or token during dictionary construction.
type CollisionError struct {
	Key       string // Source key being added
	Token     string // Token generated for Key
	Existing  string // Key already holding Token (empty for duplicates)
	Duplicate bool   // True when Key itself appeared twice
}

func (e *CollisionError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s: duplicate key %q", ErrCollision.Error(), e.Key)
	}
	return fmt.Sprintf("%s: keys %q and %q both map to token %q", ErrCollision.Error(), e.Existing, e.Key, e.Token)
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}

// ConfigError represents an option that is missing or out of range.
type ConfigError struct {
	Option string // Option that was missing/invalid
	Method Method // Encoding method in effect, if relevant
	Detail string // Human readable explanation
}

func (e *ConfigError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("%s: %s for method %q: %s", ErrConfiguration.Error(), e.Option, e.Method, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration.Error(), e.Option, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// StructuralError reports the path of the first unsafe key found in a value.
// It matches both ErrStructuralValidation and ErrUnsafeKey.
type StructuralError struct {
	Path  string          // Full path to the key, e.g. root.user.__proto__
	Key   string          // Offending key
	Cause *UnsafeKeyError // Rule that rejected the key
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s", ErrStructuralValidation.Error(), e.Path, e.Cause.Reason)
	}
	return fmt.Sprintf("%s at %s", ErrStructuralValidation.Error(), e.Path)
}

func (e *StructuralError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStructuralValidation, e.Cause}
	}
	return []error{ErrStructuralValidation}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	ContentType string // Codec content type
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newUnsafeKeyError creates an UnsafeKeyError for a key in the given role.
func newUnsafeKeyError(role, key, reason string) *UnsafeKeyError {
	return &UnsafeKeyError{Key: key, Reason: reason, Role: role}
}

// newConfigError creates a ConfigError for a bad option.
func newConfigError(option string, method Method, detail string) error {
	return &ConfigError{Option: option, Method: method, Detail: detail}
}

// newStructuralError creates a StructuralError at path.
func newStructuralError(path, key string, cause *UnsafeKeyError) error {
	return &StructuralError{Path: path, Key: key, Cause: cause}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, contentType string, cause error) error {
	return &CodecError{Err: sentinel, ContentType: contentType, Cause: cause}
}
