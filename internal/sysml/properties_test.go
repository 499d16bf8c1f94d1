// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"errors"
	"testing"

	"github.com/specialistvlad/sysmlgo/internal/naming"
	"github.com/specialistvlad/sysmlgo/internal/nodeid"
	"github.com/specialistvlad/sysmlgo/internal/quantity"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// elementGen draws one element of any variant, including nil.
func elementGen(alloc *naming.Allocator) *rapid.Generator[Element] {
	return rapid.Custom(func(t *rapid.T) Element {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,8}`).Draw(t, "name")
		var (
			e   Element
			err error
		)
		switch rapid.IntRange(0, 9).Draw(t, "variant") {
		case 0:
			e, err = NewBlock(alloc, name)
		case 1:
			e, err = NewRequirement(alloc, name, "text")
		case 2:
			e, err = NewConstraintBlock(alloc, name, "x = y")
		case 3:
			e, err = NewPackage(alloc, name)
		case 4:
			e, err = NewValueType(alloc, name, quantity.Dimensionless(1))
		case 5:
			e, err = NewInteraction(alloc, name)
		case 6:
			e, err = NewStateMachine(alloc, name)
		case 7:
			e, err = NewActivity(alloc, name)
		case 8:
			e = NewModel(name)
		default:
			return nil
		}
		if err != nil {
			t.Fatalf("constructing element: %v", err)
		}
		return e
	})
}

func TestProperty_PackageKeysStayUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewModel("M")
		keys := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c", "d"})).Draw(t, "keys")

		accepted := make(map[string]Element)
		for _, key := range keys {
			b, err := m.NewBlock(key)
			require.NoError(t, err)
			err = m.AddAs(key, b)
			if _, taken := accepted[key]; taken {
				require.ErrorIs(t, err, ErrDuplicateKey)
				continue
			}
			require.NoError(t, err)
			accepted[key] = b
		}

		require.Equal(t, len(accepted), m.Elements().Len())
		ids := make(map[string]bool)
		for key, e := range m.Elements().All() {
			require.Same(t, accepted[key], e)
			require.False(t, ids[e.ID().String()], "element stored twice")
			ids[e.ID().String()] = true
		}
	})
}

func TestProperty_TypeGating(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewModel("M")
		e := elementGen(m.Allocator()).Draw(t, "element")

		err := m.AddAs("key", e)
		if admissible(e) {
			require.NoError(t, err)
			return
		}
		require.ErrorIs(t, err, ErrInvalidElementType)
		require.Zero(t, m.Elements().Len())
	})
}

func TestProperty_MultiplicityRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.IntRange(1, 1000).Draw(t, "initial")
		b, err := NewBlock(naming.NewAllocator(), "B", WithMultiplicity(initial))
		require.NoError(t, err)

		n := rapid.Int().Draw(t, "n")
		err = b.SetMultiplicity(n)
		if n > 0 {
			require.NoError(t, err)
			require.Equal(t, n, b.Multiplicity())
			return
		}
		require.ErrorIs(t, err, ErrInvalidMultiplicity)
		require.Equal(t, initial, b.Multiplicity())
	})
}

func TestProperty_RelationshipValidity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alloc := naming.NewAllocator()
		gen := elementGen(alloc)
		client := gen.Draw(t, "client")
		supplier := gen.Draw(t, "supplier")
		_, clientIsReq := client.(*Requirement)
		_, supplierIsReq := supplier.(*Requirement)

		_, err := NewDeriveReqt(alloc, client, supplier)
		if clientIsReq && supplierIsReq {
			require.NoError(t, err)
		} else {
			require.True(t, errors.Is(err, ErrInvalidEndpoint), "deriveReqt(%v, %v): %v", client, supplier, err)
		}

		_, err = NewSatisfy(alloc, client, supplier)
		if supplierIsReq && !isNil(client) {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, ErrInvalidEndpoint)
		}
	})
}

func TestProperty_LookupPrecedence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alloc := naming.NewAllocator()
		b, err := NewBlock(alloc, "B")
		require.NoError(t, err)
		part, err := NewBlock(alloc, "P")
		require.NoError(t, err)
		value, err := NewValueType(alloc, "V", quantity.Dimensionless(1))
		require.NoError(t, err)

		key := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "key")
		if rapid.Bool().Draw(t, "valueFirst") {
			require.NoError(t, b.AddValue(key, value))
			require.NoError(t, b.AddPart(key, part))
		} else {
			require.NoError(t, b.AddPart(key, part))
			require.NoError(t, b.AddValue(key, value))
		}

		got, err := b.Lookup(key)
		require.NoError(t, err)
		require.Same(t, part, got)
	})
}

func TestProperty_AddressesResolveToTheirElement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewModel("M")
		pkgs := []*Package{&m.Package}
		keys := []string{"Hull", "hull", "Deck", "deck", "Main Deck", "mainDeck", "MainDeck"}

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			pkg := rapid.SampledFrom(pkgs).Draw(t, "pkg")
			key := rapid.SampledFrom(keys).Draw(t, "key")
			if rapid.Bool().Draw(t, "package") {
				sub, err := m.NewPackage(key)
				require.NoError(t, err)
				if pkg.AddAs(key, sub) == nil {
					pkgs = append(pkgs, sub)
				}
				continue
			}
			b, err := m.NewBlock(key)
			require.NoError(t, err)
			err = pkg.AddAs(key, b)
			if err != nil {
				require.ErrorIs(t, err, ErrDuplicateKey)
			}
		}

		err := m.Walk(func(addr nodeid.Address, e Element) error {
			got, err := m.Resolve(addr.String())
			require.NoError(t, err)
			require.Same(t, e, got, "address %s", addr.String())
			return nil
		})
		require.NoError(t, err)
	})
}
