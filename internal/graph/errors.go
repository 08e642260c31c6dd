package graph

import (
	"fmt"
	"strings"
)

// CircularDependencyError represents a circular dependency between keys.
// Path lists the keys of the cycle in resolution order; the cycle closes back
// on Path[0].
type CircularDependencyError struct {
	Node string
	Path []string
}

func (e CircularDependencyError) Error() string {
	path := e.Path
	if len(path) == 0 {
		path = []string{e.Node}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "key %s is requested again while it is being resolved: %s -> %s",
		path[0], strings.Join(path, " -> "), path[0])

	b.WriteString(" (break the loop by registering an instance or a factory for one of these keys,")
	b.WriteString(" or point an alias at a different key)")

	return b.String()
}
