// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package naming

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// identifierPrefix is prepended to sequential traceability identifiers.
const identifierPrefix = "ID"

// Allocator hands out identities, default names and sequential identifiers.
type Allocator struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewAllocator creates an allocator with all counters at zero.
func NewAllocator() *Allocator {
	return &Allocator{
		counters: make(map[string]int),
	}
}

// NewIdentity returns a fresh process-unique identity.
func (a *Allocator) NewIdentity() uuid.UUID {
	return uuid.New()
}

// Next advances the counter for tag and returns its new value. The first
// call for any tag returns 1.
func (a *Allocator) Next(tag string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counters[tag]++
	return a.counters[tag]
}

// Current reports the last value handed out for tag, or 0.
func (a *Allocator) Current(tag string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.counters[tag]
}

// DefaultName returns the next default display name for a variant, e.g.
// DefaultName("Block") yields "block1", then "block2".
func (a *Allocator) DefaultName(tag string) string {
	return LowerFirst(tag) + strconv.Itoa(a.Next(nameCounter(tag)))
}

// NextIdentifier returns the next zero-padded traceability identifier for a
// variant: "ID001", "ID002", ...
func (a *Allocator) NextIdentifier(tag string) string {
	return FormatIdentifier(a.Next(identifierCounter(tag)))
}

// Observe moves counters forward so values already present in a model are
// never handed out again. Names of the form DefaultName(tag) advance the name
// counter, identifiers of the form "ID%03d" advance the identifier counter.
// Anything else is ignored.
func (a *Allocator) Observe(tag, name, identifier string) {
	if n, ok := trailingNumber(name, LowerFirst(tag)); ok {
		a.raise(nameCounter(tag), n)
	}
	if n, ok := trailingNumber(identifier, identifierPrefix); ok {
		a.raise(identifierCounter(tag), n)
	}
}

func (a *Allocator) raise(counter string, n int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n > a.counters[counter] {
		a.counters[counter] = n
	}
}

// FormatIdentifier renders n the way sequential identifiers are written.
func FormatIdentifier(n int) string {
	return fmt.Sprintf("%s%03d", identifierPrefix, n)
}

// LowerFirst lower-cases the first letter of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// NormalizeKey turns a display name into a namespace key: the first letter is
// lower-cased and all whitespace is removed. "Primary hull" becomes
// "primaryhull".
func NormalizeKey(name string) string {
	return LowerFirst(strings.Join(strings.Fields(name), ""))
}

func nameCounter(tag string) string       { return LowerFirst(tag) + ".name" }
func identifierCounter(tag string) string { return LowerFirst(tag) + ".id" }

// trailingNumber parses s as prefix followed by a positive decimal number.
func trailingNumber(s, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
