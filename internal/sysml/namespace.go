// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"
	"iter"
	"slices"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Namespace is an insertion-ordered registry of elements keyed by string.
// Keys are unique after normalization ("Starship" and "starship" cannot both
// be bound). Callers only get read access; the owning element mutates it
// through its own checked operations.
type Namespace[T Element] struct {
	label string
	keys  []string
	items map[string]T
}

func newNamespace[T Element](label string) *Namespace[T] {
	return &Namespace[T]{
		label: label,
		items: make(map[string]T),
	}
}

// Label names the namespace in error messages, e.g. "parts".
func (n *Namespace[T]) Label() string { return n.label }

// Len returns the number of bound keys.
func (n *Namespace[T]) Len() int { return len(n.keys) }

// Has reports whether key is bound.
func (n *Namespace[T]) Has(key string) bool {
	_, ok := n.items[key]
	return ok
}

// Get returns the element bound to key.
func (n *Namespace[T]) Get(key string) (T, bool) {
	v, ok := n.items[key]
	return v, ok
}

// Keys returns a copy of the bound keys in insertion order.
func (n *Namespace[T]) Keys() []string {
	return slices.Clone(n.keys)
}

// All iterates over key/element pairs in insertion order.
func (n *Namespace[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range n.keys {
			if !yield(k, n.items[k]) {
				return
			}
		}
	}
}

// KeyOf returns the first key bound to e.
func (n *Namespace[T]) KeyOf(e Element) (string, bool) {
	if isNil(e) {
		return "", false
	}
	for _, k := range n.keys {
		if n.items[k].ID() == e.ID() {
			return k, true
		}
	}
	return "", false
}

// match finds a key equal to key, or equal to it after normalization.
func (n *Namespace[T]) match(key string) (T, bool) {
	if v, ok := n.items[key]; ok {
		return v, true
	}
	want := naming.NormalizeKey(key)
	for _, k := range n.keys {
		if naming.NormalizeKey(k) == want {
			return n.items[k], true
		}
	}
	var zero T
	return zero, false
}

func (n *Namespace[T]) bind(key string, v T) error {
	if key == "" {
		return fmt.Errorf("%w: empty key in %s", ErrInvalidArgumentType, n.label)
	}
	if _, exists := n.items[key]; exists {
		return fmt.Errorf("%w: %q is already bound in %s", ErrDuplicateKey, key, n.label)
	}
	// Addresses use normalized keys, so two keys that normalize alike would
	// share one address.
	want := naming.NormalizeKey(key)
	for _, k := range n.keys {
		if naming.NormalizeKey(k) == want {
			return fmt.Errorf("%w: %q collides with %q in %s", ErrDuplicateKey, key, k, n.label)
		}
	}
	n.keys = append(n.keys, key)
	n.items[key] = v
	return nil
}

func (n *Namespace[T]) unbind(key string) (T, error) {
	v, ok := n.items[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q in %s", ErrNotFound, key, n.label)
	}
	delete(n.items, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
	return v, nil
}

// bindNamed binds v under key, or under its normalized name when key is empty.
func bindNamed[T Element](n *Namespace[T], key string, v T) error {
	if key == "" {
		key = naming.NormalizeKey(v.Name())
	}
	return n.bind(key, v)
}
