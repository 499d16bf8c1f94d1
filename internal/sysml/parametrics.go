// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"github.com/specialistvlad/sysmlgo/internal/naming"
	"github.com/specialistvlad/sysmlgo/internal/quantity"
)

// ConstraintBlock holds a parametric relation as opaque expression text.
// The expression is stored, never evaluated.
type ConstraintBlock struct {
	base
	expression string
}

func NewConstraintBlock(alloc *naming.Allocator, name, expression string) (*ConstraintBlock, error) {
	b, err := newBase(alloc, KindConstraintBlock, name)
	if err != nil {
		return nil, err
	}
	return &ConstraintBlock{base: b, expression: expression}, nil
}

func (c *ConstraintBlock) Kind() Kind { return KindConstraintBlock }

// Expression returns the stored relation, e.g. "F = m * a".
func (c *ConstraintBlock) Expression() string { return c.expression }

// ValueType is a named quantity attached to a block's values namespace.
type ValueType struct {
	base
	value quantity.Quantity
}

func NewValueType(alloc *naming.Allocator, name string, value quantity.Quantity) (*ValueType, error) {
	b, err := newBase(alloc, KindValueType, name)
	if err != nil {
		return nil, err
	}
	return &ValueType{base: b, value: value}, nil
}

func (v *ValueType) Kind() Kind { return KindValueType }

// Quantity returns the current value.
func (v *ValueType) Quantity() quantity.Quantity { return v.value }

// SetQuantity replaces the current value.
func (v *ValueType) SetQuantity(q quantity.Quantity) { v.value = q }

// Convert returns the value expressed in another unit.
func (v *ValueType) Convert(unit string) (quantity.Quantity, error) {
	return v.value.Convert(unit)
}
