package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode the top-level blocks of any file.
type fileRoot struct {
	Models []*ModelDefinition `hcl:"model,block"`
	Remain hcl.Body           `hcl:",remain"`
}

// PackageDefinition is a `package "name" { ... }` block. The model block has
// the same shape.
type PackageDefinition struct {
	Name          string                    `hcl:"name,label"`
	Key           string                    `hcl:"key,optional"`
	Packages      []*PackageDefinition      `hcl:"package,block"`
	Blocks        []*BlockDefinition        `hcl:"block,block"`
	Requirements  []*RequirementDefinition  `hcl:"requirement,block"`
	Constraints   []*ConstraintDefinition   `hcl:"constraint,block"`
	Relationships []*RelationshipDefinition `hcl:"relationship,block"`
}

// ModelDefinition is a `model "name" { ... }` block.
type ModelDefinition PackageDefinition

// BlockDefinition is a `block`, `part` or `flow_port` block.
type BlockDefinition struct {
	Name         string                  `hcl:"name,label"`
	Key          string                  `hcl:"key,optional"`
	Multiplicity hcl.Expression          `hcl:"multiplicity,optional"`
	Parts        []*BlockDefinition      `hcl:"part,block"`
	FlowPorts    []*BlockDefinition      `hcl:"flow_port,block"`
	Values       []*ValueDefinition      `hcl:"value,block"`
	Constraints  []*ConstraintDefinition `hcl:"constraint,block"`
	References   []*ReferenceDefinition  `hcl:"reference,block"`
}

// ValueDefinition is a `value "name" { magnitude = 1200 unit = "kilogram" }`
// block.
type ValueDefinition struct {
	Name      string         `hcl:"name,label"`
	Key       string         `hcl:"key,optional"`
	Magnitude hcl.Expression `hcl:"magnitude,optional"`
	Unit      string         `hcl:"unit,optional"`
}

// ConstraintDefinition holds a parametric expression.
type ConstraintDefinition struct {
	Name       string `hcl:"name,label"`
	Key        string `hcl:"key,optional"`
	Expression string `hcl:"expression"`
}

// ReferenceDefinition binds an element found elsewhere in the model. Target
// is a dot-separated address from the model root.
type ReferenceDefinition struct {
	Key    string `hcl:"key,label"`
	Target string `hcl:"target"`
}

// RequirementDefinition is a `requirement "name" { text = "..." }` block.
type RequirementDefinition struct {
	Name string `hcl:"name,label"`
	Key  string `hcl:"key,optional"`
	Text string `hcl:"text"`
	ID   string `hcl:"id,optional"`
}

// RelationshipDefinition is a `relationship "satisfy" { ... }` block. The
// label is the relationship kind; endpoints are addresses from the model
// root.
type RelationshipDefinition struct {
	Kind     string `hcl:"kind,label"`
	Name     string `hcl:"name,optional"`
	Client   string `hcl:"client"`
	Supplier string `hcl:"supplier"`
}
