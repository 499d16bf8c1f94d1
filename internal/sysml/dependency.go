// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Dependency is a directed relationship from a client to a supplier. Its Kind
// selects the endpoint contract:
//
//	dependency  any element -> any element
//	deriveReqt  requirement -> requirement
//	satisfy     any element -> requirement
//	verify      any element -> requirement
//	refine      any element -> requirement
//
// Endpoints are fixed at construction.
type Dependency struct {
	base
	kind     Kind
	client   Element
	supplier Element
}

// DependencyOption configures a Dependency at construction.
type DependencyOption func(*dependencyConfig)

type dependencyConfig struct {
	name string
}

// Named overrides the allocator's default name, e.g. "satisfy1".
func Named(name string) DependencyOption {
	return func(c *dependencyConfig) {
		c.name = name
	}
}

// Relate creates a relationship of the given kind after checking its
// endpoints.
func Relate(alloc *naming.Allocator, kind Kind, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	if !kind.IsDependency() {
		return nil, fmt.Errorf("%w: %s is not a relationship kind", ErrInvalidArgumentType, kind)
	}
	if err := checkEndpoints(kind, client, supplier); err != nil {
		return nil, err
	}

	var cfg dependencyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	b, err := newBase(alloc, kind, cfg.name)
	if err != nil {
		return nil, err
	}
	return &Dependency{base: b, kind: kind, client: client, supplier: supplier}, nil
}

func NewDependency(alloc *naming.Allocator, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(alloc, KindDependency, client, supplier, opts...)
}

func NewDeriveReqt(alloc *naming.Allocator, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(alloc, KindDeriveReqt, client, supplier, opts...)
}

func NewSatisfy(alloc *naming.Allocator, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(alloc, KindSatisfy, client, supplier, opts...)
}

func NewVerify(alloc *naming.Allocator, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(alloc, KindVerify, client, supplier, opts...)
}

func NewRefine(alloc *naming.Allocator, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(alloc, KindRefine, client, supplier, opts...)
}

func (d *Dependency) Kind() Kind { return d.kind }

// Client returns the dependent end.
func (d *Dependency) Client() Element { return d.client }

// Supplier returns the end being depended on.
func (d *Dependency) Supplier() Element { return d.supplier }

func checkEndpoints(kind Kind, client, supplier Element) error {
	if isNil(client) {
		return fmt.Errorf("%w: %s client must be a model element", ErrInvalidEndpoint, kind)
	}
	if isNil(supplier) {
		return fmt.Errorf("%w: %s supplier must be a model element", ErrInvalidEndpoint, kind)
	}

	switch kind {
	case KindDeriveReqt:
		if _, ok := client.(*Requirement); !ok {
			return fmt.Errorf("%w: deriveReqt client %s must be a requirement", ErrInvalidEndpoint, describe(client))
		}
		if _, ok := supplier.(*Requirement); !ok {
			return fmt.Errorf("%w: deriveReqt supplier %s must be a requirement", ErrInvalidEndpoint, describe(supplier))
		}
	case KindSatisfy, KindVerify, KindRefine:
		if _, ok := supplier.(*Requirement); !ok {
			return fmt.Errorf("%w: %s supplier %s must be a requirement", ErrInvalidEndpoint, kind, describe(supplier))
		}
	}
	return nil
}
