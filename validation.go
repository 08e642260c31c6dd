package locator

import (
	"strings"

	"github.com/junioryono/locator/internal/graph"
)

// Validate checks the type definitions for dependency cycles without
// resolving anything. Resolution detects cycles too, but only once the
// offending key is requested.
func (c *Container) Validate() error {
	g, err := c.buildGraph()
	if err != nil {
		return err
	}

	if err := g.DetectCycles(); err != nil {
		return ContainerError{Cause: err}
	}

	return nil
}

// DependencyGraph renders the type definitions and their constructor
// dependencies in Graphviz DOT format. Types that are referenced but not
// defined are drawn dashed.
func (c *Container) DependencyGraph() (string, error) {
	g, err := c.buildGraph()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := graph.NewVisualizer(g).WriteDOT(&b); err != nil {
		return "", err
	}

	return b.String(), nil
}

// BuildOrder returns the defined types in dependency order: every type comes
// after the defined types its constructor depends on. Referenced types that
// are not defined are left out. A cycle fails like Validate.
func (c *Container) BuildOrder() ([]string, error) {
	g, err := c.buildGraph()
	if err != nil {
		return nil, err
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return nil, ContainerError{Cause: err}
	}

	order := make([]string, 0, g.Size())
	for _, key := range sorted {
		if n, ok := g.Node(key); ok && n.Defined {
			order = append(order, key)
		}
	}

	return order, nil
}

// DependencyGraphText renders the type definitions one per line as
// "type -> dep, dep".
func (c *Container) DependencyGraphText() (string, error) {
	g, err := c.buildGraph()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := graph.NewVisualizer(g).WriteText(&b); err != nil {
		return "", err
	}

	return b.String(), nil
}

func (c *Container) buildGraph() (*graph.DependencyGraph, error) {
	g := graph.NewDependencyGraph()
	for _, def := range c.s.types.All() {
		if err := g.AddNode(def.Name, def.Dependencies()); err != nil {
			return nil, err
		}
	}
	return g, nil
}
