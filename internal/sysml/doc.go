// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sysml is an in-memory, schema-constrained object graph for
// describing the structure and requirements of an engineered system.
//
// # Core Concepts
//
//   - Element: the capability every model entity exposes. An element has a
//     process-unique identity assigned once at construction, a display name
//     and a Kind. The stereotype label ("«block»") is derived from the Kind.
//
//   - Block, Requirement, ConstraintBlock, ValueType: the element variants.
//     A Block owns five independently keyed namespaces (parts, references,
//     values, constraints, flow ports) and a positive multiplicity.
//
//   - Dependency: a typed edge between a client and a supplier. Its Kind
//     (dependency, deriveReqt, satisfy, verify, refine) fixes the endpoint
//     contract, which is checked once at construction. Endpoints cannot be
//     reassigned.
//
//   - Package: an ordered registry of elements. Only blocks, requirements,
//     constraint blocks, packages and dependencies may be inserted; keys are
//     unique and collisions are rejected.
//
//   - Model: the root package. It owns the naming.Allocator that every
//     constructor receives, so independent models never share counters.
//
// # Ownership
//
// Registries own what is bound in them, nothing more. Removing a key from one
// registry never touches other registries that also hold the element, and
// Block references are never owned. Traversals (Walk, IsValid,
// TraceabilityMatrix) follow ownership only and visit each element once.
//
// # Errors
//
// Every failure wraps one of the sentinel errors in errors.go and leaves all
// registries unchanged.
//
// # Thread-Safety
//
// Registries are not synchronized. Callers that share a model across
// goroutines must serialize access. The allocator is the only shared state
// and is safe for concurrent use.
package sysml
