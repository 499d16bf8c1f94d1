// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package naming issues identities and default names for model elements.
//
// Every element constructor receives an *Allocator. The allocator hands out
// process-unique identities (random UUIDs) and keeps one monotonically
// increasing counter per variant tag, which backs default display names such
// as "block3" and sequential requirement identifiers such as "ID007".
//
// Counters live on the allocator rather than in package state, so two models
// in the same process never observe each other's numbering. An Allocator is
// safe for concurrent use.
package naming
