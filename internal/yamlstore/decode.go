package yamlstore

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"gopkg.in/yaml.v3"
)

// Deserialize parses a YAML document into a new Model. Input whose root is
// not a model document fails with sysml.ErrInvalidArgumentType; relationship
// endpoints and refs to anchors missing from the document fail with
// sysml.ErrNotFound.
func Deserialize(data []byte, opts ...sysml.ModelOption) (*sysml.Model, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", sysml.ErrInvalidArgumentType, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", sysml.ErrInvalidArgumentType)
	}
	if body := root.Content[0]; body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping, got %s", sysml.ErrInvalidArgumentType, body.ShortTag())
	}

	var doc Document
	if err := root.Decode(&doc); err != nil {
		if errors.Is(err, sysml.ErrInvalidMultiplicity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", sysml.ErrInvalidArgumentType, err)
	}
	return Decode(&doc, opts...)
}

// Decode builds a Model from its document form.
func Decode(doc *Document, opts ...sysml.ModelOption) (*sysml.Model, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported document version %d", sysml.ErrInvalidArgumentType, doc.Version)
	}
	if doc.Model.Kind != sysml.KindModel.String() {
		return nil, fmt.Errorf("%w: document root is %q, not a model", sysml.ErrInvalidArgumentType, doc.Model.Kind)
	}

	d := &decoder{
		nodes:    make(map[int]*Node),
		built:    make(map[int]sysml.Element),
		building: make(map[int]bool),
	}
	if err := d.index(&doc.Model); err != nil {
		return nil, err
	}

	d.model = sysml.NewModel(doc.Model.Name, opts...)
	d.observe()
	if doc.Model.Anchor != 0 {
		d.built[doc.Model.Anchor] = d.model
	}
	if err := d.populate(&doc.Model, d.model); err != nil {
		return nil, err
	}
	return d.model, nil
}

type decoder struct {
	model    *sysml.Model
	nodes    map[int]*Node
	built    map[int]sysml.Element
	building map[int]bool
}

// index records every inline node by anchor and checks kinds.
func (d *decoder) index(n *Node) error {
	if n.Anchor != 0 {
		if _, dup := d.nodes[n.Anchor]; dup {
			return fmt.Errorf("%w: anchor %d is defined twice", sysml.ErrInvalidArgumentType, n.Anchor)
		}
		d.nodes[n.Anchor] = n
	}
	return n.entries(func(field string, e *Entry) error {
		if e.Ref != 0 {
			return nil
		}
		if e.Anchor == 0 {
			return fmt.Errorf("%w: %s entry %q has neither anchor nor ref", sysml.ErrInvalidArgumentType, field, e.Key)
		}
		kind, err := sysml.ParseKind(e.Kind)
		if err != nil {
			return fmt.Errorf("%s entry %q: %w", field, e.Key, err)
		}
		if kind == sysml.KindModel {
			return fmt.Errorf("%w: %s entry %q is a nested model", sysml.ErrInvalidElementType, field, e.Key)
		}
		return d.index(&e.Node)
	})
}

// observe advances the allocator past names and identifiers present in the
// document so elements created afterwards never repeat them.
func (d *decoder) observe() {
	alloc := d.model.Allocator()
	for _, n := range d.nodes {
		alloc.Observe(n.Kind, n.Name, n.Identifier)
	}
}

// element returns the element an entry stands for.
func (d *decoder) element(e *Entry) (sysml.Element, error) {
	if e.Ref != 0 {
		return d.build(e.Ref)
	}
	return d.build(e.Anchor)
}

// build creates the element defined at anchor once, resolving relationship
// endpoints first.
func (d *decoder) build(anchor int) (sysml.Element, error) {
	if el, ok := d.built[anchor]; ok {
		return el, nil
	}
	n, ok := d.nodes[anchor]
	if !ok {
		return nil, fmt.Errorf("%w: anchor %d", sysml.ErrNotFound, anchor)
	}
	if d.building[anchor] {
		return nil, fmt.Errorf("%w: relationship %q depends on itself", sysml.ErrInvalidEndpoint, n.Name)
	}
	d.building[anchor] = true
	defer delete(d.building, anchor)

	el, err := d.construct(n)
	if err != nil {
		return nil, fmt.Errorf("building %s %q: %w", n.Kind, n.Name, err)
	}
	d.built[anchor] = el
	return el, nil
}

func (d *decoder) construct(n *Node) (sysml.Element, error) {
	kind, err := sysml.ParseKind(n.Kind)
	if err != nil {
		return nil, err
	}
	m := d.model

	switch kind {
	case sysml.KindPackage:
		return m.NewPackage(n.Name)
	case sysml.KindBlock:
		multiplicity, err := wholeMultiplicity(n.Multiplicity)
		if err != nil {
			return nil, err
		}
		return m.NewBlock(n.Name, sysml.WithMultiplicity(multiplicity))
	case sysml.KindRequirement:
		return m.NewRequirement(n.Name, n.Text, sysml.WithIdentifier(n.Identifier))
	case sysml.KindConstraintBlock:
		return m.NewConstraintBlock(n.Name, n.Expression)
	case sysml.KindValueType:
		var magnitude float64
		if n.Magnitude != nil {
			magnitude = *n.Magnitude
		}
		return m.NewValueType(n.Name, magnitude, n.Unit)
	case sysml.KindInteraction:
		return m.NewInteraction(n.Name)
	case sysml.KindStateMachine:
		return m.NewStateMachine(n.Name)
	case sysml.KindActivity:
		return m.NewActivity(n.Name)
	}

	if !kind.IsDependency() {
		return nil, fmt.Errorf("%w: %s cannot appear inside a model", sysml.ErrInvalidElementType, kind)
	}
	client, err := d.build(n.Client)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	supplier, err := d.build(n.Supplier)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	var opts []sysml.DependencyOption
	if n.Name != "" {
		opts = append(opts, sysml.Named(n.Name))
	}
	return m.Relate(kind, client, supplier, opts...)
}

// populate binds the entries of n into owner, then recurses into the inline
// children.
func (d *decoder) populate(n *Node, owner sysml.Element) error {
	return n.entries(func(field string, e *Entry) error {
		child, err := d.element(e)
		if err != nil {
			return fmt.Errorf("%s entry %q: %w", field, e.Key, err)
		}
		if err := bind(owner, field, e.Key, child); err != nil {
			return err
		}
		if e.Ref != 0 {
			return nil
		}
		return d.populate(&e.Node, child)
	})
}

func bind(owner sysml.Element, field, key string, child sysml.Element) error {
	switch o := owner.(type) {
	case *sysml.Model:
		if field == fieldElements {
			return o.AddAs(key, child)
		}
	case *sysml.Package:
		if field == fieldElements {
			return o.AddAs(key, child)
		}
	case *sysml.Block:
		switch field {
		case fieldParts:
			return o.AddPart(key, child)
		case fieldReferences:
			return o.AddReference(key, child)
		case fieldValues:
			return o.AddValue(key, child)
		case fieldConstraints:
			return o.AddConstraint(key, child)
		case fieldFlowPorts:
			return o.AddFlowPort(key, child)
		}
	case *sysml.Interaction:
		if field == fieldLifelines {
			return o.AddLifeline(child)
		}
	}
	return fmt.Errorf("%w: %s cannot hold %s", sysml.ErrInvalidArgumentType, sysml.Stereotype(owner), field)
}

func wholeMultiplicity(v Multiplicity) (int, error) {
	if v == 0 {
		return 1, nil
	}
	if v < 0 || int64(v) > math.MaxInt {
		return 0, fmt.Errorf("%w: %d, must be a positive integer", sysml.ErrInvalidMultiplicity, v)
	}
	return int(v), nil
}
