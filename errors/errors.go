/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrTypeMismatch is returned when an argument or a stored value has the wrong kind
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrKey is returned when a required key, hash field or set member is absent
	ErrKey = errors.New("key or field not found")

	// ErrValue is returned when a removal or search target value is not present
	ErrValue = errors.New("value not present")

	// ErrIndex is returned when a list index is out of range
	ErrIndex = errors.New("index out of range")

	// ErrNotImplemented is returned by operations that are deliberately unsupported
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrInvalidConfig is returned when a factory or hook is misconfigured
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TypeMismatchError reports an operation applied to a value of the wrong kind,
// either a bad argument or a remote key holding an incompatible type.
type TypeMismatchError struct {
	Op     string
	Key    string
	Detail string
}

func (e *TypeMismatchError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s on key %q: %s", e.Op, e.Key, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// KeyError reports an absent key, hash field or set member where the
// operation requires presence.
type KeyError struct {
	Type   string
	Key    string
	Member string
}

func (e *KeyError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("%s %q: member %q not found", e.Type, e.Key, e.Member)
	}
	return fmt.Sprintf("%s %q: key not found", e.Type, e.Key)
}

func (e *KeyError) Is(target error) bool {
	return target == ErrKey
}

// ValueError reports a removal or search target that is not present in a
// List or Sequence.
type ValueError struct {
	Type  string
	Key   string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s %q: value %q not present", e.Type, e.Key, e.Value)
}

func (e *ValueError) Is(target error) bool {
	return target == ErrValue
}

// IndexError reports a list index outside the current bounds.
type IndexError struct {
	Type  string
	Key   string
	Index int64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %q: index %d out of range", e.Type, e.Key, e.Index)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// NotImplementedError marks an operation that is intentionally unsupported.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Op)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// InvalidConfigError reports a misconfigured factory, hook or policy.
type InvalidConfigError struct {
	Field   string
	Message string
}

func (e *InvalidConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Helper functions for creating errors

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(op, key, detail string) error {
	return &TypeMismatchError{Op: op, Key: key, Detail: detail}
}

// NewKeyError creates a new KeyError for an absent key
func NewKeyError(datatype, key string) error {
	return &KeyError{Type: datatype, Key: key}
}

// NewMemberError creates a new KeyError for an absent member or field
func NewMemberError(datatype, key, member string) error {
	return &KeyError{Type: datatype, Key: key, Member: member}
}

// NewValueError creates a new ValueError
func NewValueError(datatype, key, value string) error {
	return &ValueError{Type: datatype, Key: key, Value: value}
}

// NewIndexError creates a new IndexError
func NewIndexError(datatype, key string, index int64) error {
	return &IndexError{Type: datatype, Key: key, Index: index}
}

// NewNotImplementedError creates a new NotImplementedError
func NewNotImplementedError(op string) error {
	return &NotImplementedError{Op: op}
}

// NewInvalidConfigError creates a new InvalidConfigError
func NewInvalidConfigError(field, message string) error {
	return &InvalidConfigError{Field: field, Message: message}
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsKeyError checks if an error is a key or field error
func IsKeyError(err error) bool {
	return errors.Is(err, ErrKey)
}

// IsValueError checks if an error is a value error
func IsValueError(err error) bool {
	return errors.Is(err, ErrValue)
}

// IsIndexError checks if an error is an index error
func IsIndexError(err error) bool {
	return errors.Is(err, ErrIndex)
}

// IsNotImplemented checks if an error marks an unsupported operation
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsInvalidConfig checks if an error is a configuration error
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
