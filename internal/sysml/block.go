// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Block is a structural component of the system.
//
// A block owns five independently keyed namespaces. The same key may be used
// in more than one of them; Lookup resolves such collisions in the order
// parts, references, values, constraints, flow ports.
type Block struct {
	base
	multiplicity int

	parts       *Namespace[*Block]
	references  *Namespace[Element]
	values      *Namespace[*ValueType]
	constraints *Namespace[*ConstraintBlock]
	flows       *Namespace[*Block]

	diagrams *Diagrams
}

// BlockOption configures a Block at construction.
type BlockOption func(*Block) error

// WithMultiplicity sets the initial multiplicity.
func WithMultiplicity(n int) BlockOption {
	return func(b *Block) error {
		return b.SetMultiplicity(n)
	}
}

// WithPart, WithReference, WithValue, WithConstraint and WithFlowPort fill a
// namespace at construction through the same checks as the matching Add
// method. An empty key defaults to the element's normalized name.

func WithPart(key string, part Element) BlockOption {
	return func(b *Block) error { return b.AddPart(key, part) }
}

func WithReference(key string, ref Element) BlockOption {
	return func(b *Block) error { return b.AddReference(key, ref) }
}

func WithValue(key string, value Element) BlockOption {
	return func(b *Block) error { return b.AddValue(key, value) }
}

func WithConstraint(key string, constraint Element) BlockOption {
	return func(b *Block) error { return b.AddConstraint(key, constraint) }
}

func WithFlowPort(key string, port Element) BlockOption {
	return func(b *Block) error { return b.AddFlowPort(key, port) }
}

// NewBlock creates a block with multiplicity 1 and empty namespaces, then
// applies opts in order. The first failing option aborts construction.
func NewBlock(alloc *naming.Allocator, name string, opts ...BlockOption) (*Block, error) {
	b, err := newBase(alloc, KindBlock, name)
	if err != nil {
		return nil, err
	}
	blk := &Block{
		base:         b,
		multiplicity: 1,
		parts:        newNamespace[*Block]("parts"),
		references:   newNamespace[Element]("references"),
		values:       newNamespace[*ValueType]("values"),
		constraints:  newNamespace[*ConstraintBlock]("constraints"),
		flows:        newNamespace[*Block]("flow ports"),
	}
	blk.diagrams = newDiagrams(blk)
	for _, opt := range opts {
		if err := opt(blk); err != nil {
			return nil, err
		}
	}
	return blk, nil
}

func (b *Block) Kind() Kind { return KindBlock }

// Multiplicity returns how many instances of the block are expected.
func (b *Block) Multiplicity() int { return b.multiplicity }

// SetMultiplicity replaces the multiplicity. Values below 1 are rejected and
// leave the previous value in place.
func (b *Block) SetMultiplicity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d for block %q, must be a positive integer", ErrInvalidMultiplicity, n, b.name)
	}
	b.multiplicity = n
	return nil
}

// Parts, References, Values, Constraints and FlowPorts expose read-only
// views of the block's namespaces.
func (b *Block) Parts() *Namespace[*Block] { return b.parts }
func (b *Block) References() *Namespace[Element] { return b.references }
func (b *Block) Values() *Namespace[*ValueType] { return b.values }
func (b *Block) Constraints() *Namespace[*ConstraintBlock] { return b.constraints }
func (b *Block) FlowPorts() *Namespace[*Block] { return b.flows }

// Diagrams returns the block's diagram hooks.
func (b *Block) Diagrams() *Diagrams { return b.diagrams }

// AddPart binds a block into the parts namespace. An empty key defaults to
// the part's normalized name.
func (b *Block) AddPart(key string, part Element) error {
	p, err := b.asBlock(part, "part")
	if err != nil {
		return err
	}
	return bindNamed(b.parts, key, p)
}

// AddReference binds any element into the references namespace. References
// are not owned and are skipped by traversals.
func (b *Block) AddReference(key string, ref Element) error {
	if isNil(ref) {
		return fmt.Errorf("%w: reference of block %q must be a model element", ErrInvalidArgumentType, b.name)
	}
	return bindNamed(b.references, key, ref)
}

// AddValue binds a value type into the values namespace.
func (b *Block) AddValue(key string, value Element) error {
	v, ok := value.(*ValueType)
	if !ok || v == nil {
		return fmt.Errorf("%w: value %s of block %q must be a value type", ErrInvalidArgumentType, describe(value), b.name)
	}
	return bindNamed(b.values, key, v)
}

// AddConstraint binds a constraint block into the constraints namespace.
func (b *Block) AddConstraint(key string, constraint Element) error {
	c, ok := constraint.(*ConstraintBlock)
	if !ok || c == nil {
		return fmt.Errorf("%w: constraint %s of block %q must be a constraint block", ErrInvalidArgumentType, describe(constraint), b.name)
	}
	return bindNamed(b.constraints, key, c)
}

// AddFlowPort binds a block into the flow ports namespace.
func (b *Block) AddFlowPort(key string, port Element) error {
	p, err := b.asBlock(port, "flow port")
	if err != nil {
		return err
	}
	return bindNamed(b.flows, key, p)
}

func (b *Block) RemovePart(key string) error {
	_, err := b.parts.unbind(key)
	return err
}

func (b *Block) RemoveReference(key string) error {
	_, err := b.references.unbind(key)
	return err
}

func (b *Block) RemoveValue(key string) error {
	_, err := b.values.unbind(key)
	return err
}

func (b *Block) RemoveConstraint(key string) error {
	_, err := b.constraints.unbind(key)
	return err
}

func (b *Block) RemoveFlowPort(key string) error {
	_, err := b.flows.unbind(key)
	return err
}

// Lookup finds key across all five namespaces.
func (b *Block) Lookup(key string) (Element, error) {
	if e, ok := b.parts.Get(key); ok {
		return e, nil
	}
	if e, ok := b.references.Get(key); ok {
		return e, nil
	}
	if e, ok := b.values.Get(key); ok {
		return e, nil
	}
	if e, ok := b.constraints.Get(key); ok {
		return e, nil
	}
	if e, ok := b.flows.Get(key); ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q in block %q", ErrNotFound, key, b.name)
}

// resolveSegment is Lookup with normalized key matching, used by address
// resolution.
func (b *Block) resolveSegment(key string) (Element, bool) {
	if e, err := b.Lookup(key); err == nil {
		return e, true
	}
	if e, ok := b.parts.match(key); ok {
		return e, true
	}
	if e, ok := b.references.match(key); ok {
		return e, true
	}
	if e, ok := b.values.match(key); ok {
		return e, true
	}
	if e, ok := b.constraints.match(key); ok {
		return e, true
	}
	if e, ok := b.flows.match(key); ok {
		return e, true
	}
	return nil, false
}

func (b *Block) asBlock(e Element, role string) (*Block, error) {
	p, ok := e.(*Block)
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: %s %s of block %q must be a block", ErrInvalidArgumentType, role, describe(e), b.name)
	}
	if p == b {
		return nil, fmt.Errorf("%w: block %q cannot be its own %s", ErrInvalidArgumentType, b.name, role)
	}
	if p.owns(b) {
		return nil, fmt.Errorf("%w: block %q already contains %q, it cannot become its %s", ErrInvalidArgumentType, p.name, b.name, role)
	}
	return p, nil
}

// owns reports whether target is reachable from b through parts and flow
// ports.
func (b *Block) owns(target *Block) bool {
	seen := make(map[*Block]bool)
	var visit func(*Block) bool
	visit = func(cur *Block) bool {
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, child := range cur.parts.All() {
			if child == target || visit(child) {
				return true
			}
		}
		for _, child := range cur.flows.All() {
			if child == target || visit(child) {
				return true
			}
		}
		return false
	}
	return visit(b)
}
