// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Package is an ordered, whitelisted registry of model elements.
type Package struct {
	base
	alloc    *naming.Allocator
	logger   *slog.Logger
	elements *Namespace[Element]
	diagrams *Diagrams
}

// NewPackage creates an empty package. Packages created through a Model or
// through CreatePackage share its allocator and logger.
func NewPackage(alloc *naming.Allocator, name string) (*Package, error) {
	b, err := newBase(alloc, KindPackage, name)
	if err != nil {
		return nil, err
	}
	p := &Package{}
	p.init(b, alloc, discardLogger())
	p.diagrams = newDiagrams(p)
	return p, nil
}

func (p *Package) init(b base, alloc *naming.Allocator, logger *slog.Logger) {
	p.base = b
	p.alloc = alloc
	p.logger = logger
	p.elements = newNamespace[Element](fmt.Sprintf("package %q", b.name))
}

func (p *Package) Kind() Kind { return KindPackage }

// Elements returns a read-only, insertion-ordered view of the registry.
func (p *Package) Elements() *Namespace[Element] { return p.elements }

// Diagrams returns the package's diagram hooks.
func (p *Package) Diagrams() *Diagrams { return p.diagrams }

// Add inserts e under its own display name.
func (p *Package) Add(e Element) error {
	if !admissible(e) {
		return p.rejectVariant(e)
	}
	return p.AddAs(e.Name(), e)
}

// AddAs inserts e under key. Only blocks, requirements, constraint blocks,
// packages and relationships are accepted. A package may not contain itself,
// directly or through nested packages.
func (p *Package) AddAs(key string, e Element) error {
	if !admissible(e) {
		return p.rejectVariant(e)
	}
	if sub, ok := e.(*Package); ok && sub.contains(p) {
		return fmt.Errorf("%w: package %q cannot contain itself", ErrInvalidArgumentType, p.name)
	}
	if err := p.elements.bind(key, e); err != nil {
		return err
	}
	p.logger.Debug("Element added to package.", "package", p.name, "key", key, "stereotype", Stereotype(e), "id", e.ID())
	return nil
}

// Get returns the element bound to key.
func (p *Package) Get(key string) (Element, error) {
	e, ok := p.elements.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q in package %q", ErrNotFound, key, p.name)
	}
	return e, nil
}

// Remove unbinds key. Other registries holding the same element keep it.
func (p *Package) Remove(key string) error {
	e, err := p.elements.unbind(key)
	if err != nil {
		return err
	}
	p.logger.Debug("Element removed from package.", "package", p.name, "key", key, "stereotype", Stereotype(e))
	return nil
}

// CreateBlock constructs a block and adds it under its name.
func (p *Package) CreateBlock(name string, opts ...BlockOption) (*Block, error) {
	b, err := NewBlock(p.alloc, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateRequirement constructs a requirement and adds it under its name.
func (p *Package) CreateRequirement(name, text string, opts ...RequirementOption) (*Requirement, error) {
	r, err := NewRequirement(p.alloc, name, text, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Add(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateConstraintBlock constructs a constraint block and adds it under its
// name.
func (p *Package) CreateConstraintBlock(name, expression string) (*ConstraintBlock, error) {
	c, err := NewConstraintBlock(p.alloc, name, expression)
	if err != nil {
		return nil, err
	}
	if err := p.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreatePackage constructs a nested package sharing this package's
// allocator and logger.
func (p *Package) CreatePackage(name string) (*Package, error) {
	sub, err := p.newPackage(name)
	if err != nil {
		return nil, err
	}
	if err := p.Add(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateDependency constructs a relationship of kind and adds it under its
// name.
func (p *Package) CreateDependency(kind Kind, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	d, err := Relate(p.alloc, kind, client, supplier, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Add(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Package) newPackage(name string) (*Package, error) {
	b, err := newBase(p.alloc, KindPackage, name)
	if err != nil {
		return nil, err
	}
	sub := &Package{}
	sub.init(b, p.alloc, p.logger)
	sub.diagrams = newDiagrams(sub)
	return sub, nil
}

// contains reports whether target is p or is reachable from p through
// nested packages.
func (p *Package) contains(target *Package) bool {
	seen := make(map[*Package]bool)
	var visit func(*Package) bool
	visit = func(cur *Package) bool {
		if cur == target {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, e := range cur.elements.All() {
			if sub, ok := e.(*Package); ok && visit(sub) {
				return true
			}
		}
		return false
	}
	return visit(p)
}

func (p *Package) rejectVariant(e Element) error {
	return fmt.Errorf("%w: package %q cannot hold %s", ErrInvalidElementType, p.name, describe(e))
}

// admissible is the package whitelist.
func admissible(e Element) bool {
	switch v := e.(type) {
	case *Block:
		return v != nil
	case *Requirement:
		return v != nil
	case *ConstraintBlock:
		return v != nil
	case *Package:
		return v != nil
	case *Dependency:
		return v != nil
	}
	return false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
