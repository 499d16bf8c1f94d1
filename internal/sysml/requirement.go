// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import "github.com/specialistvlad/sysmlgo/internal/naming"

// Requirement is a textual statement the system must fulfil.
type Requirement struct {
	base
	text       string
	identifier string
}

// RequirementOption configures a Requirement at construction.
type RequirementOption func(*Requirement)

// WithIdentifier sets an explicit traceability identifier instead of the
// allocator's next "IDnnn" value.
func WithIdentifier(id string) RequirementOption {
	return func(r *Requirement) {
		r.identifier = id
	}
}

// NewRequirement creates a requirement. Identifiers are drawn from alloc
// unless one is supplied with WithIdentifier; a supplied "IDnnn" moves the
// allocator past nnn so later requirements never repeat it.
func NewRequirement(alloc *naming.Allocator, name, text string, opts ...RequirementOption) (*Requirement, error) {
	b, err := newBase(alloc, KindRequirement, name)
	if err != nil {
		return nil, err
	}
	r := &Requirement{base: b, text: text}
	for _, opt := range opts {
		opt(r)
	}
	if r.identifier == "" {
		r.identifier = alloc.NextIdentifier(KindRequirement.String())
	} else {
		alloc.Observe(KindRequirement.String(), "", r.identifier)
	}
	return r, nil
}

func (r *Requirement) Kind() Kind { return KindRequirement }

// Text returns the requirement statement.
func (r *Requirement) Text() string { return r.text }

// Identifier returns the traceability identifier, e.g. "ID001".
func (r *Requirement) Identifier() string { return r.identifier }
