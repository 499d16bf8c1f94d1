// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for model operations. Returned errors wrap exactly one of
// these, so callers classify failures with errors.Is.
var (
	// ErrInvalidArgumentType is returned when a constructor, setter or
	// decoder receives a value of the wrong shape.
	ErrInvalidArgumentType = errors.New("invalid argument type")

	// ErrDuplicateKey is returned when inserting under a key that is already
	// bound in the target namespace.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned by lookups and removals of unbound keys.
	ErrNotFound = errors.New("not found")

	// ErrInvalidElementType is returned when an element's variant is not
	// accepted by a registry.
	ErrInvalidElementType = errors.New("invalid element type")

	// ErrInvalidEndpoint is returned when a relationship endpoint does not
	// satisfy the relationship's type contract.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidMultiplicity is returned for multiplicities that are not
	// positive integers.
	ErrInvalidMultiplicity = errors.New("invalid multiplicity")
)

// isNil reports whether e is nil or a typed nil pointer.
func isNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// describe renders an element for error messages.
func describe(e Element) string {
	if isNil(e) {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q", Stereotype(e), e.Name())
}
