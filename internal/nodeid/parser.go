// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"strings"
	"unicode"
)

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	if name == "-" || name == "_" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// Parse creates a new Address struct by parsing its canonical string representation.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	addr := &Address{}
	for _, segment := range strings.Split(rawID, ".") {
		if segment == "" {
			return nil, fmt.Errorf("address %q contains empty segment", rawID)
		}
		if !isValidSegmentName(segment) {
			return nil, fmt.Errorf("invalid segment name: %q", segment)
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}
