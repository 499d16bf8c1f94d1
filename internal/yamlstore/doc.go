// Package yamlstore persists sysml models as YAML documents.
//
// A document has a version and a single model tree:
//
//	version: 1
//	model:
//	  kind: model
//	  anchor: 1
//	  name: USS Enterprise
//	  elements:
//	    - key: Structure
//	      kind: package
//	      anchor: 2
//	      name: Structure
//	      elements: [...]
//
// Every element is written inline exactly once, at the first place a
// depth-first walk of the model meets it, and receives an integer anchor.
// Later occurrences (an element bound in two registries, a block reference to
// an already written element) are written as {key, ref: <anchor>}.
// Relationship endpoints are always anchors, so a relationship may point at
// an element written further down the document.
//
// Anchors are assigned in walk order, which makes the output deterministic:
// serializing a loaded document reproduces it byte for byte. Identities are
// not persisted; loaded elements receive fresh ones from the new model's
// allocator.
package yamlstore
