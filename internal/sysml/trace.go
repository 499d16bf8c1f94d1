// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/sysmlgo/internal/nodeid"
)

// traceIndex groups the relationships found in a tree by supplier and by
// client.
type traceIndex struct {
	requirements []tracedRequirement
	incoming     map[uuid.UUID][]*Dependency
	outgoing     map[uuid.UUID][]*Dependency
}

type tracedRequirement struct {
	addr nodeid.Address
	req  *Requirement
}

func (p *Package) buildTraceIndex() *traceIndex {
	idx := &traceIndex{
		incoming: make(map[uuid.UUID][]*Dependency),
		outgoing: make(map[uuid.UUID][]*Dependency),
	}
	// The callback never fails, so neither does the walk.
	_ = p.Walk(func(addr nodeid.Address, e Element) error {
		switch v := e.(type) {
		case *Requirement:
			idx.requirements = append(idx.requirements, tracedRequirement{addr: addr, req: v})
		case *Dependency:
			idx.incoming[v.supplier.ID()] = append(idx.incoming[v.supplier.ID()], v)
			idx.outgoing[v.client.ID()] = append(idx.outgoing[v.client.ID()], v)
		}
		return nil
	})
	return idx
}

func (idx *traceIndex) suppliersOf(id uuid.UUID, kind Kind) []Element {
	var out []Element
	for _, d := range idx.outgoing[id] {
		if d.kind == kind {
			out = append(out, d.supplier)
		}
	}
	return out
}

func (idx *traceIndex) clientsOf(id uuid.UUID, kind Kind) []Element {
	var out []Element
	for _, d := range idx.incoming[id] {
		if d.kind == kind {
			out = append(out, d.client)
		}
	}
	return out
}

// Unmet describes a requirement that lacks a satisfying or verifying
// relationship.
type Unmet struct {
	Address        nodeid.Address
	Requirement    *Requirement
	MissingSatisfy bool
	MissingVerify  bool
}

func (u Unmet) String() string {
	var missing []string
	if u.MissingSatisfy {
		missing = append(missing, "satisfy")
	}
	if u.MissingVerify {
		missing = append(missing, "verify")
	}
	return fmt.Sprintf("%s (%s): missing %s", u.Address.String(), u.Requirement.Identifier(), strings.Join(missing, ", "))
}

// Report is the outcome of IsValid.
type Report struct {
	Valid bool
	Unmet []Unmet
}

// IsValid checks that every requirement owned by the model has at least one
// incoming satisfy and one incoming verify relationship. Relationships only
// count when they are themselves owned somewhere in the model.
func (m *Model) IsValid() Report {
	idx := m.buildTraceIndex()

	report := Report{Valid: true}
	for _, tr := range idx.requirements {
		u := Unmet{
			Address:        tr.addr,
			Requirement:    tr.req,
			MissingSatisfy: len(idx.clientsOf(tr.req.id, KindSatisfy)) == 0,
			MissingVerify:  len(idx.clientsOf(tr.req.id, KindVerify)) == 0,
		}
		if u.MissingSatisfy || u.MissingVerify {
			report.Valid = false
			report.Unmet = append(report.Unmet, u)
		}
	}
	m.logger.Debug("Model validated.", "model", m.name, "requirements", len(idx.requirements), "unmet", len(report.Unmet))
	return report
}

// TraceRow is one requirement's line in the traceability matrix.
type TraceRow struct {
	Address     nodeid.Address
	Requirement *Requirement
	SatisfiedBy []Element
	VerifiedBy  []Element
	RefinedBy   []Element
	DerivedFrom []Element
	DerivedTo   []Element
	Dependents  []Element
}

// TraceabilityMatrix lists every requirement owned by p with the elements
// related to it, in walk order.
func (p *Package) TraceabilityMatrix() []TraceRow {
	idx := p.buildTraceIndex()

	rows := make([]TraceRow, 0, len(idx.requirements))
	for _, tr := range idx.requirements {
		id := tr.req.id
		rows = append(rows, TraceRow{
			Address:     tr.addr,
			Requirement: tr.req,
			SatisfiedBy: idx.clientsOf(id, KindSatisfy),
			VerifiedBy:  idx.clientsOf(id, KindVerify),
			RefinedBy:   idx.clientsOf(id, KindRefine),
			DerivedFrom: idx.suppliersOf(id, KindDeriveReqt),
			DerivedTo:   idx.clientsOf(id, KindDeriveReqt),
			Dependents:  idx.clientsOf(id, KindDependency),
		})
	}
	return rows
}
