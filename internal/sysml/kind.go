// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sysml

import (
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/naming"
)

// Kind tags the variant of an element.
type Kind int

const (
	KindInvalid Kind = iota
	KindBlock
	KindRequirement
	KindConstraintBlock
	KindValueType
	KindPackage
	KindModel
	KindDependency
	KindDeriveReqt
	KindSatisfy
	KindVerify
	KindRefine
	KindInteraction
	KindStateMachine
	KindActivity
)

var kindNames = map[Kind]string{
	KindBlock:           "block",
	KindRequirement:     "requirement",
	KindConstraintBlock: "constraintBlock",
	KindValueType:       "valueType",
	KindPackage:         "package",
	KindModel:           "model",
	KindDependency:      "dependency",
	KindDeriveReqt:      "deriveReqt",
	KindSatisfy:         "satisfy",
	KindVerify:          "verify",
	KindRefine:          "refine",
	KindInteraction:     "interaction",
	KindStateMachine:    "stateMachine",
	KindActivity:        "activity",
}

// String returns the variant tag, e.g. "constraintBlock".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsDependency reports whether k is one of the relationship kinds.
func (k Kind) IsDependency() bool {
	switch k {
	case KindDependency, KindDeriveReqt, KindSatisfy, KindVerify, KindRefine:
		return true
	}
	return false
}

// ParseKind maps a variant tag back to its Kind. Tags are matched after key
// normalization, so "Satisfy" and "satisfy" are equivalent.
func ParseKind(tag string) (Kind, error) {
	want := naming.NormalizeKey(tag)
	for k, name := range kindNames {
		if name == want {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: unknown element kind %q", ErrInvalidArgumentType, tag)
}

// Stereotype returns the display tag for an element, e.g. "«requirement»".
func Stereotype(e Element) string {
	return "«" + e.Kind().String() + "»"
}
