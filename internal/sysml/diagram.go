// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import "context"

// DiagramKind names one of the SysML diagram types.
type DiagramKind int

const (
	BlockDefinitionDiagram DiagramKind = iota
	InternalBlockDiagram
	PackageDiagram
	UseCaseDiagram
	RequirementDiagram
	ActivityDiagram
	SequenceDiagram
	StateMachineDiagram
	ParametricDiagram
)

var diagramNames = [...]string{
	BlockDefinitionDiagram: "bdd",
	InternalBlockDiagram:   "ibd",
	PackageDiagram:         "pkg",
	UseCaseDiagram:         "uc",
	RequirementDiagram:     "req",
	ActivityDiagram:        "act",
	SequenceDiagram:        "sd",
	StateMachineDiagram:    "stm",
	ParametricDiagram:      "par",
}

func (k DiagramKind) String() string {
	if k < 0 || int(k) >= len(diagramNames) {
		return "unknown"
	}
	return diagramNames[k]
}

// DiagramHook renders one diagram for owner. Rendering itself lives outside
// this package.
type DiagramHook func(ctx context.Context, kind DiagramKind, owner Element) error

// Diagrams holds the diagram entry points of a package or block. Every entry
// point is a no-op until a hook is installed for its kind.
type Diagrams struct {
	owner Element
	hooks map[DiagramKind]DiagramHook
}

func newDiagrams(owner Element) *Diagrams {
	return &Diagrams{owner: owner, hooks: make(map[DiagramKind]DiagramHook)}
}

// SetHook installs hook for kind. A nil hook restores the no-op.
func (d *Diagrams) SetHook(kind DiagramKind, hook DiagramHook) {
	if hook == nil {
		delete(d.hooks, kind)
		return
	}
	d.hooks[kind] = hook
}

func (d *Diagrams) render(ctx context.Context, kind DiagramKind) error {
	hook, ok := d.hooks[kind]
	if !ok {
		return nil
	}
	return hook(ctx, kind, d.owner)
}

func (d *Diagrams) BlockDefinition(ctx context.Context) error {
	return d.render(ctx, BlockDefinitionDiagram)
}

func (d *Diagrams) InternalBlock(ctx context.Context) error {
	return d.render(ctx, InternalBlockDiagram)
}

func (d *Diagrams) Package(ctx context.Context) error {
	return d.render(ctx, PackageDiagram)
}

func (d *Diagrams) UseCase(ctx context.Context) error {
	return d.render(ctx, UseCaseDiagram)
}

func (d *Diagrams) Requirement(ctx context.Context) error {
	return d.render(ctx, RequirementDiagram)
}

func (d *Diagrams) Activity(ctx context.Context) error {
	return d.render(ctx, ActivityDiagram)
}

func (d *Diagrams) Sequence(ctx context.Context) error {
	return d.render(ctx, SequenceDiagram)
}

func (d *Diagrams) StateMachine(ctx context.Context) error {
	return d.render(ctx, StateMachineDiagram)
}

func (d *Diagrams) Parametric(ctx context.Context) error {
	return d.render(ctx, ParametricDiagram)
}
