// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Element is the capability shared by every model entity.
type Element interface {
	// ID returns the identity assigned at construction. It never changes.
	ID() uuid.UUID
	// Name returns the display name.
	Name() string
	// Kind returns the element's variant.
	Kind() Kind
}

// base carries the identity and display name every variant embeds.
type base struct {
	id   uuid.UUID
	name string
}

// newBase allocates an identity and, when name is empty, the next default
// name for kind.
func newBase(alloc *naming.Allocator, kind Kind, name string) (base, error) {
	if alloc == nil {
		return base{}, fmt.Errorf("%w: %s requires an allocator", ErrInvalidArgumentType, kind)
	}
	if name == "" {
		name = alloc.DefaultName(kind.String())
	}
	return base{id: alloc.NewIdentity(), name: name}, nil
}

func (b *base) ID() uuid.UUID { return b.id }

func (b *base) Name() string { return b.name }
