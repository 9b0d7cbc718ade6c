package bitfields

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid bit assignment or group configuration.
// A misconfigured field group must never operate, so these are raised at setup
// and are not recoverable.
type ConfigurationError struct {
	Name   string
	Weight uint64
	Msg    string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Name != "" && e.Weight != 0:
		return fmt.Sprintf("bitfields: bad configuration for flag %q (weight %d): %s", e.Name, e.Weight, e.Msg)
	case e.Name != "":
		return fmt.Sprintf("bitfields: bad configuration for flag %q: %s", e.Name, e.Msg)
	case e.Weight != 0:
		return fmt.Sprintf("bitfields: bad configuration for weight %d: %s", e.Weight, e.Msg)
	}
	return "bitfields: bad configuration: " + e.Msg
}

// UnknownFlagError reports a reference to a flag name or weight that is not
// part of the assignment.
type UnknownFlagError struct {
	Name   string
	Weight uint64
}

func (e *UnknownFlagError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("bitfields: no flag with weight %d", e.Weight)
	}
	return fmt.Sprintf("bitfields: unknown flag %q", e.Name)
}

// InvalidPackedValueError reports a packed value that violates the storage
// contract (the column must hold a non-negative integer).
type InvalidPackedValueError struct {
	Value int64
}

func (e *InvalidPackedValueError) Error() string {
	return fmt.Sprintf("bitfields: invalid packed value %d", e.Value)
}

// ConflictingFlagError reports a flag requested both true and false in a
// single call. It is raised before any fragment is produced.
type ConflictingFlagError struct {
	Name string
}

func (e *ConflictingFlagError) Error() string {
	return fmt.Sprintf("bitfields: flag %q requested both true and false", e.Name)
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

func IsUnknownFlagError(err error) bool {
	var e *UnknownFlagError
	return errors.As(err, &e)
}

func IsInvalidPackedValueError(err error) bool {
	var e *InvalidPackedValueError
	return errors.As(err, &e)
}

func IsConflictingFlagError(err error) bool {
	var e *ConflictingFlagError
	return errors.As(err, &e)
}
