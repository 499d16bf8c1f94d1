// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/sysmlgo/internal/naming"
	"github.com/specialistvlad/sysmlgo/internal/nodeid"
)

// SkipChildren may be returned by a WalkFunc to stop descending into the
// current element without ending the walk.
var SkipChildren = errors.New("skip children")

// WalkFunc is called once per owned element. addr is the element's path of
// normalized keys from the walked package.
type WalkFunc func(addr nodeid.Address, e Element) error

// Walk visits every element owned by p, depth first. Packages are walked in
// insertion order and blocks in namespace precedence order (parts, values,
// constraints, flow ports). References are not followed. An element reachable
// through more than one owner is visited only at its first address.
func (p *Package) Walk(fn WalkFunc) error {
	w := walker{fn: fn, seen: make(map[uuid.UUID]bool)}
	w.seen[p.id] = true
	return w.pkg(nodeid.Address{}, p)
}

type walker struct {
	fn   WalkFunc
	seen map[uuid.UUID]bool
}

func (w *walker) pkg(addr nodeid.Address, p *Package) error {
	for key, e := range p.elements.All() {
		if err := w.visit(addr.Child(naming.NormalizeKey(key)), e); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) block(addr nodeid.Address, b *Block) error {
	for key, e := range b.parts.All() {
		if err := w.visit(addr.Child(naming.NormalizeKey(key)), e); err != nil {
			return err
		}
	}
	for key, e := range b.values.All() {
		if err := w.visit(addr.Child(naming.NormalizeKey(key)), e); err != nil {
			return err
		}
	}
	for key, e := range b.constraints.All() {
		if err := w.visit(addr.Child(naming.NormalizeKey(key)), e); err != nil {
			return err
		}
	}
	for key, e := range b.flows.All() {
		if err := w.visit(addr.Child(naming.NormalizeKey(key)), e); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(addr nodeid.Address, e Element) error {
	if w.seen[e.ID()] {
		return nil
	}
	w.seen[e.ID()] = true

	err := w.fn(addr, e)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}

	switch v := e.(type) {
	case *Package:
		return w.pkg(addr, v)
	case *Block:
		return w.block(addr, v)
	}
	return nil
}

// Resolve finds the element at a dot-separated address such as
// "structure.starship.nacelle". Each segment matches a key exactly or after
// normalization. Inside a block, segments follow Lookup precedence and may
// pass through references.
func (p *Package) Resolve(address string) (Element, error) {
	addr, err := nodeid.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgumentType, err)
	}

	var cur Element = p
	for i, seg := range addr.Path {
		var (
			next Element
			ok   bool
		)
		switch c := cur.(type) {
		case *Package:
			next, ok = c.elements.match(seg)
		case *Block:
			next, ok = c.resolveSegment(seg)
		}
		if !ok {
			prefix := nodeid.New(addr.Path[:i+1]...)
			return nil, fmt.Errorf("%w: %q has no element at %q", ErrNotFound, p.name, prefix.String())
		}
		cur = next
	}
	return cur, nil
}

// AddressOf returns the address at which Walk visits e.
func (p *Package) AddressOf(e Element) (nodeid.Address, error) {
	if isNil(e) {
		return nodeid.Address{}, fmt.Errorf("%w: nil element", ErrNotFound)
	}
	var found *nodeid.Address
	err := p.Walk(func(addr nodeid.Address, cur Element) error {
		if cur.ID() == e.ID() {
			found = &addr
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nodeid.Address{}, err
	}
	if found == nil {
		return nodeid.Address{}, fmt.Errorf("%w: %s is not owned by %q", ErrNotFound, describe(e), p.name)
	}
	return *found, nil
}

var errStopWalk = errors.New("stop walk")
