// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"log/slog"

	"github.com/specialistvlad/sysmlgo/internal/naming"
	"github.com/specialistvlad/sysmlgo/internal/quantity"
)

// Model is the root package. It has no parent, cannot be inserted into a
// package, and owns the allocator every element of the model is built with.
type Model struct {
	Package
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	logger *slog.Logger
	alloc  *naming.Allocator
}

// WithLogger makes registry mutations log at Debug level to logger.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(c *modelConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAllocator supplies the allocator instead of creating a fresh one.
func WithAllocator(alloc *naming.Allocator) ModelOption {
	return func(c *modelConfig) {
		if alloc != nil {
			c.alloc = alloc
		}
	}
}

// NewModel creates an empty model. An empty name yields "model1".
func NewModel(name string, opts ...ModelOption) *Model {
	cfg := modelConfig{logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.alloc == nil {
		cfg.alloc = naming.NewAllocator()
	}

	if name == "" {
		name = cfg.alloc.DefaultName(KindModel.String())
	}
	m := &Model{}
	m.init(base{id: cfg.alloc.NewIdentity(), name: name}, cfg.alloc, cfg.logger)
	m.diagrams = newDiagrams(m)
	m.logger.Debug("Model created.", "model", name, "id", m.id)
	return m
}

func (m *Model) Kind() Kind { return KindModel }

// Allocator returns the allocator shared by every element of the model.
func (m *Model) Allocator() *naming.Allocator { return m.alloc }

// Logger returns the logger registry mutations are written to.
func (m *Model) Logger() *slog.Logger { return m.logger }

// The constructors below build unattached elements with the model's
// allocator. Insert them with Add, AddAs or Block.AddPart.

func (m *Model) NewPackage(name string) (*Package, error) {
	return m.newPackage(name)
}

func (m *Model) NewBlock(name string, opts ...BlockOption) (*Block, error) {
	return NewBlock(m.alloc, name, opts...)
}

func (m *Model) NewRequirement(name, text string, opts ...RequirementOption) (*Requirement, error) {
	return NewRequirement(m.alloc, name, text, opts...)
}

func (m *Model) NewConstraintBlock(name, expression string) (*ConstraintBlock, error) {
	return NewConstraintBlock(m.alloc, name, expression)
}

// NewValueType builds a value type of magnitude in the named unit.
func (m *Model) NewValueType(name string, magnitude float64, unit string) (*ValueType, error) {
	q, err := quantity.New(magnitude, unit)
	if err != nil {
		return nil, err
	}
	return NewValueType(m.alloc, name, q)
}

func (m *Model) NewInteraction(name string) (*Interaction, error) {
	return NewInteraction(m.alloc, name)
}

func (m *Model) NewStateMachine(name string) (*StateMachine, error) {
	return NewStateMachine(m.alloc, name)
}

func (m *Model) NewActivity(name string) (*Activity, error) {
	return NewActivity(m.alloc, name)
}

func (m *Model) Relate(kind Kind, client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return Relate(m.alloc, kind, client, supplier, opts...)
}

func (m *Model) NewDependency(client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return NewDependency(m.alloc, client, supplier, opts...)
}

func (m *Model) NewDeriveReqt(client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return NewDeriveReqt(m.alloc, client, supplier, opts...)
}

func (m *Model) NewSatisfy(client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return NewSatisfy(m.alloc, client, supplier, opts...)
}

func (m *Model) NewVerify(client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return NewVerify(m.alloc, client, supplier, opts...)
}

func (m *Model) NewRefine(client, supplier Element, opts ...DependencyOption) (*Dependency, error) {
	return NewRefine(m.alloc, client, supplier, opts...)
}
