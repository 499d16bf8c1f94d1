package yamlstore

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"gopkg.in/yaml.v3"
)

// Serialize renders m as a YAML document.
func Serialize(m *sysml.Model) ([]byte, error) {
	doc, err := Encode(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding model %q: %w", m.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding model %q: %w", m.Name(), err)
	}
	return buf.Bytes(), nil
}

// Encode converts m into its document form without rendering it.
func Encode(m *sysml.Model) (*Document, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", sysml.ErrInvalidArgumentType)
	}

	e := &encoder{
		anchors: make(map[uuid.UUID]int),
		written: make(map[uuid.UUID]bool),
	}
	e.assign(m)

	root, err := e.node(m)
	if err != nil {
		return nil, err
	}
	return &Document{Version: Version, Model: root}, nil
}

type encoder struct {
	anchors map[uuid.UUID]int
	written map[uuid.UUID]bool
}

// assign numbers every element reachable through namespaces in the order
// node will write them.
func (e *encoder) assign(el sysml.Element) {
	e.anchors[el.ID()] = len(e.anchors) + 1
	eachChild(el, func(_, _ string, child sysml.Element) {
		if _, ok := e.anchors[child.ID()]; !ok {
			e.assign(child)
		}
	})
}

func (e *encoder) node(el sysml.Element) (Node, error) {
	e.written[el.ID()] = true
	n := Node{
		Kind:   el.Kind().String(),
		Anchor: e.anchors[el.ID()],
		Name:   el.Name(),
	}

	switch v := el.(type) {
	case *sysml.Model, *sysml.Package, *sysml.Interaction, *sysml.StateMachine, *sysml.Activity:
	case *sysml.Block:
		n.Multiplicity = Multiplicity(v.Multiplicity())
	case *sysml.Requirement:
		n.Identifier = v.Identifier()
		n.Text = v.Text()
	case *sysml.ConstraintBlock:
		n.Expression = v.Expression()
	case *sysml.ValueType:
		q := v.Quantity()
		magnitude := q.Magnitude()
		n.Magnitude = &magnitude
		n.Unit = q.Unit()
	case *sysml.Dependency:
		var err error
		if n.Client, err = e.endpoint(v, "client", v.Client()); err != nil {
			return Node{}, err
		}
		if n.Supplier, err = e.endpoint(v, "supplier", v.Supplier()); err != nil {
			return Node{}, err
		}
	default:
		return Node{}, fmt.Errorf("%w: cannot serialize %T", sysml.ErrInvalidElementType, el)
	}

	var err error
	eachChild(el, func(field, key string, child sysml.Element) {
		if err != nil {
			return
		}
		entry := Entry{Key: key}
		if e.written[child.ID()] {
			entry.Ref = e.anchors[child.ID()]
		} else if entry.Node, err = e.node(child); err != nil {
			return
		}
		list := n.field(field)
		*list = append(*list, entry)
	})
	return n, err
}

func (e *encoder) endpoint(d *sysml.Dependency, role string, el sysml.Element) (int, error) {
	anchor, ok := e.anchors[el.ID()]
	if !ok {
		return 0, fmt.Errorf("%w: %s of %s %q is not part of the model", sysml.ErrNotFound, role, d.Kind(), d.Name())
	}
	return anchor, nil
}

// eachChild lists what el holds, in document order.
func eachChild(el sysml.Element, fn func(field, key string, child sysml.Element)) {
	switch v := el.(type) {
	case *sysml.Model:
		each(fieldElements, v.Elements(), fn)
	case *sysml.Package:
		each(fieldElements, v.Elements(), fn)
	case *sysml.Block:
		each(fieldParts, v.Parts(), fn)
		each(fieldReferences, v.References(), fn)
		each(fieldValues, v.Values(), fn)
		each(fieldConstraints, v.Constraints(), fn)
		each(fieldFlowPorts, v.FlowPorts(), fn)
	case *sysml.Interaction:
		each(fieldLifelines, v.Lifelines(), fn)
	}
}

func each[T sysml.Element](field string, ns *sysml.Namespace[T], fn func(field, key string, child sysml.Element)) {
	for key, child := range ns.All() {
		fn(field, key, child)
	}
}
