// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for the address of an
element inside a model tree, based on the canonical format `path`.

The format is a dot-separated sequence of namespace keys, e.g.
`structure.starship.nacelle`: the package "structure" owns the block
"starship", whose namespaces contain "nacelle".

This package only formats and parses addresses. Resolving an address against
a model is the job of the model itself.
*/
package nodeid
