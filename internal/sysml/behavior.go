// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Interaction, StateMachine and Activity are behavior placeholders. They
// can be related through dependencies but are not accepted by packages.

// Interaction orders message exchange between block lifelines.
type Interaction struct {
	base
	lifelines *Namespace[*Block]
}

func NewInteraction(alloc *naming.Allocator, name string) (*Interaction, error) {
	b, err := newBase(alloc, KindInteraction, name)
	if err != nil {
		return nil, err
	}
	return &Interaction{base: b, lifelines: newNamespace[*Block]("lifelines")}, nil
}

func (i *Interaction) Kind() Kind { return KindInteraction }

// Lifelines returns the participating blocks in the order they were added.
func (i *Interaction) Lifelines() *Namespace[*Block] { return i.lifelines }

// AddLifeline adds a block as a participant, keyed by its normalized name.
func (i *Interaction) AddLifeline(lifeline Element) error {
	b, ok := lifeline.(*Block)
	if !ok || b == nil {
		return fmt.Errorf("%w: lifeline %s of interaction %q must be a block", ErrInvalidArgumentType, describe(lifeline), i.name)
	}
	return bindNamed(i.lifelines, "", b)
}

func (i *Interaction) RemoveLifeline(key string) error {
	_, err := i.lifelines.unbind(key)
	return err
}

type StateMachine struct {
	base
}

func NewStateMachine(alloc *naming.Allocator, name string) (*StateMachine, error) {
	b, err := newBase(alloc, KindStateMachine, name)
	if err != nil {
		return nil, err
	}
	return &StateMachine{base: b}, nil
}

func (s *StateMachine) Kind() Kind { return KindStateMachine }

type Activity struct {
	base
}

func NewActivity(alloc *naming.Allocator, name string) (*Activity, error) {
	b, err := newBase(alloc, KindActivity, name)
	if err != nil {
		return nil, err
	}
	return &Activity{base: b}, nil
}

func (a *Activity) Kind() Kind { return KindActivity }
