package yamlstore

import (
	"fmt"

	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"gopkg.in/yaml.v3"
)

// Version is the document format written by Serialize.
const Version = 1

// Document is the on-disk shape of a model.
type Document struct {
	Version int  `yaml:"version"`
	Model   Node `yaml:"model"`
}

// Node is one element. Which fields are set depends on Kind; a node with Ref
// set points at an element defined elsewhere in the document.
type Node struct {
	Kind   string `yaml:"kind,omitempty"`
	Anchor int    `yaml:"anchor,omitempty"`
	Ref    int    `yaml:"ref,omitempty"`
	Name   string `yaml:"name,omitempty"`

	// requirement
	Identifier string `yaml:"id,omitempty"`
	Text       string `yaml:"text,omitempty"`

	// constraintBlock
	Expression string `yaml:"expression,omitempty"`

	// valueType
	Magnitude *float64 `yaml:"magnitude,omitempty"`
	Unit      string   `yaml:"unit,omitempty"`

	// block
	Multiplicity Multiplicity `yaml:"multiplicity,omitempty"`
	Parts        []Entry `yaml:"parts,omitempty"`
	References   []Entry `yaml:"references,omitempty"`
	Values       []Entry `yaml:"values,omitempty"`
	Constraints  []Entry `yaml:"constraints,omitempty"`
	FlowPorts    []Entry `yaml:"flow_ports,omitempty"`

	// package, model
	Elements []Entry `yaml:"elements,omitempty"`

	// interaction
	Lifelines []Entry `yaml:"lifelines,omitempty"`

	// relationships
	Client   int `yaml:"client,omitempty"`
	Supplier int `yaml:"supplier,omitempty"`
}

// Multiplicity is written as a plain integer scalar. Floats, strings and
// integers that overflow int64 fail to decode with
// sysml.ErrInvalidMultiplicity.
type Multiplicity int64

func (m *Multiplicity) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" || value.Decode(&n) != nil {
		return fmt.Errorf("%w: %q, must be a positive integer", sysml.ErrInvalidMultiplicity, value.Value)
	}
	*m = Multiplicity(n)
	return nil
}

// Entry binds a node to a key in its owner's namespace.
type Entry struct {
	Key  string `yaml:"key"`
	Node `yaml:",inline"`
}

// Namespace field names, in the order they are written.
const (
	fieldElements    = "elements"
	fieldParts       = "parts"
	fieldReferences  = "references"
	fieldValues      = "values"
	fieldConstraints = "constraints"
	fieldFlowPorts   = "flow_ports"
	fieldLifelines   = "lifelines"
)

func (n *Node) field(name string) *[]Entry {
	switch name {
	case fieldElements:
		return &n.Elements
	case fieldParts:
		return &n.Parts
	case fieldReferences:
		return &n.References
	case fieldValues:
		return &n.Values
	case fieldConstraints:
		return &n.Constraints
	case fieldFlowPorts:
		return &n.FlowPorts
	case fieldLifelines:
		return &n.Lifelines
	}
	return nil
}

// entries iterates over all child entries of n in document order.
func (n *Node) entries(fn func(field string, e *Entry) error) error {
	for _, name := range []string{fieldElements, fieldParts, fieldReferences, fieldValues, fieldConstraints, fieldFlowPorts, fieldLifelines} {
		list := n.field(name)
		for i := range *list {
			if err := fn(name, &(*list)[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
