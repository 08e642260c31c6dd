package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer renders a dependency graph.
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a new graph visualizer.
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format. Nodes that are only
// referenced as dependencies are drawn dashed.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	keys := v.graph.sortedKeys()
	ids := make(map[string]string, len(keys))

	if _, err := fmt.Fprintln(w, "digraph dependencies {"); err != nil {
		return err
	}
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box];")

	for i, key := range keys {
		id := fmt.Sprintf("n%d", i)
		ids[key] = id

		style := "solid"
		if !v.graph.nodes[key].Defined {
			style = "dashed"
		}

		fmt.Fprintf(w, "  %s [label=%q, style=%s];\n", id, key, style)
	}

	for _, from := range keys {
		for _, to := range v.graph.edges[from] {
			fmt.Fprintf(w, "  %s -> %s;\n", ids[from], ids[to])
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteText writes one line per node listing its dependencies.
func (v *Visualizer) WriteText(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	for _, key := range v.graph.sortedKeys() {
		deps := v.graph.edges[key]
		if len(deps) == 0 {
			if _, err := fmt.Fprintf(w, "%s\n", key); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s -> %s\n", key, strings.Join(deps, ", ")); err != nil {
			return err
		}
	}

	return nil
}
