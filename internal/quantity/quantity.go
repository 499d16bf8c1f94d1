// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package quantity pairs a numeric magnitude with a physical unit. Unit
// lookup, conversion and formatting are delegated to go-units; this package
// only adds the combine operations a value property needs.
package quantity

import (
	"errors"
	"fmt"
	"strconv"

	units "github.com/bcicen/go-units"
)

var (
	// ErrUnknownUnit is returned when a unit name is not in the unit registry.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrIncompatible is returned when two quantities cannot be converted
	// into one another, e.g. metres and kilograms.
	ErrIncompatible = errors.New("incompatible units")
)

// Quantity is an immutable magnitude with an optional unit. The zero value is
// the dimensionless number 0.
type Quantity struct {
	magnitude float64
	unit      *units.Unit
}

// New returns a quantity of magnitude in the named unit. An empty unit
// produces a dimensionless quantity. Units are found by name, symbol or alias.
func New(magnitude float64, unit string) (Quantity, error) {
	if unit == "" {
		return Quantity{magnitude: magnitude}, nil
	}
	u, err := units.Find(unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return Quantity{magnitude: magnitude, unit: &u}, nil
}

// Dimensionless returns a unitless quantity.
func Dimensionless(magnitude float64) Quantity {
	return Quantity{magnitude: magnitude}
}

// Magnitude returns the numeric part of the quantity.
func (q Quantity) Magnitude() float64 { return q.magnitude }

// Unit returns the canonical unit name, or "" when dimensionless.
func (q Quantity) Unit() string {
	if q.unit == nil {
		return ""
	}
	return q.unit.Name
}

// Symbol returns the unit symbol, or "" when dimensionless.
func (q Quantity) Symbol() string {
	if q.unit == nil {
		return ""
	}
	return q.unit.Symbol
}

// Dimensionless reports whether q carries no unit.
func (q Quantity) Dimensionless() bool { return q.unit == nil }

// Convert expresses q in another unit.
func (q Quantity) Convert(unit string) (Quantity, error) {
	target, err := New(0, unit)
	if err != nil {
		return Quantity{}, err
	}
	return q.convertTo(target)
}

func (q Quantity) convertTo(target Quantity) (Quantity, error) {
	switch {
	case q.unit == nil && target.unit == nil:
		return q, nil
	case q.unit == nil || target.unit == nil:
		return Quantity{}, fmt.Errorf("%w: %q and %q", ErrIncompatible, q.Unit(), target.Unit())
	case q.unit.Name == target.unit.Name:
		return Quantity{magnitude: q.magnitude, unit: target.unit}, nil
	}

	v, err := units.NewValue(q.magnitude, *q.unit).Convert(*target.unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q to %q: %v", ErrIncompatible, q.Unit(), target.Unit(), err)
	}
	return Quantity{magnitude: v.Float(), unit: target.unit}, nil
}

// Add returns q + other, expressed in q's unit.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	o, err := other.convertTo(q)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude + o.magnitude, unit: q.unit}, nil
}

// Scale multiplies the magnitude by factor, keeping the unit.
func (q Quantity) Scale(factor float64) Quantity {
	return Quantity{magnitude: q.magnitude * factor, unit: q.unit}
}

// Equal reports whether both quantities have the same magnitude and unit.
func (q Quantity) Equal(other Quantity) bool {
	return q.magnitude == other.magnitude && q.Unit() == other.Unit()
}

// String formats the quantity as "12 parsec" or "3" when dimensionless.
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.magnitude, 'g', -1, 64)
	if q.unit == nil {
		return m
	}
	return m + " " + q.unit.Name
}
