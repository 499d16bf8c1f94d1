// internal/nodeid/types.go
package nodeid

// Address is the structured representation of an element's position in a
// model tree. It is modeled as a path of namespace keys. The zero Address
// denotes the root.
type Address struct {
	Path []string
}

// New builds an Address from the given keys.
func New(keys ...string) Address {
	return Address{Path: append([]string(nil), keys...)}
}

// Child returns a new Address one level below a. The receiver is not modified.
func (a Address) Child(key string) Address {
	path := make([]string, 0, len(a.Path)+1)
	path = append(path, a.Path...)
	return Address{Path: append(path, key)}
}

// IsRoot reports whether the address has no segments.
func (a Address) IsRoot() bool {
	return len(a.Path) == 0
}

// Last returns the final key of the address, or "" for the root.
func (a Address) Last() string {
	if a.IsRoot() {
		return ""
	}
	return a.Path[len(a.Path)-1]
}
