package graph

import (
	"fmt"
	"sort"
	"sync"
)

// DependencyGraph manages the dependency relationships between type names.
// It provides cycle detection and topological sorting.
type DependencyGraph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	edges map[string][]string // adjacency list representation
}

// Node represents a type in the dependency graph.
type Node struct {
	Key string

	// Defined is false for nodes only referenced as a dependency.
	Defined bool

	InDegree  int // number of dependents
	OutDegree int // number of dependencies

	Dependencies []string
	Dependents   []string
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*Node),
		edges: make(map[string][]string),
	}
}

// AddNode adds key with its dependencies, replacing earlier edges of key.
// Dependencies that are not yet nodes are added as undefined nodes.
func (g *DependencyGraph) AddNode(key string, deps []string) error {
	if key == "" {
		return fmt.Errorf("node key cannot be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node := g.ensure(key)
	node.Defined = true

	edges := make([]string, 0, len(deps))
	for _, dep := range deps {
		g.ensure(dep)
		edges = append(edges, dep)
	}

	g.edges[key] = edges
	g.updateDegrees()

	return nil
}

// Node returns the node for key.
func (g *DependencyGraph) Node(key string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[key]
	return n, ok
}

// Size returns the number of nodes.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *DependencyGraph) ensure(key string) *Node {
	node, ok := g.nodes[key]
	if !ok {
		node = &Node{Key: key}
		g.nodes[key] = node
	}
	return node
}

// updateDegrees recalculates in/out degrees for all nodes.
func (g *DependencyGraph) updateDegrees() {
	for _, node := range g.nodes {
		node.InDegree = 0
		node.OutDegree = 0
		node.Dependencies = nil
		node.Dependents = nil
	}

	for from, tos := range g.edges {
		fromNode, ok := g.nodes[from]
		if !ok {
			continue
		}

		fromNode.OutDegree = len(tos)
		fromNode.Dependencies = append([]string(nil), tos...)

		for _, to := range tos {
			if toNode, ok := g.nodes[to]; ok {
				toNode.InDegree++
				toNode.Dependents = append(toNode.Dependents, from)
			}
		}
	}
}

// sortedKeys returns node keys in a stable order so reports are deterministic.
func (g *DependencyGraph) sortedKeys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TopologicalSort returns node keys in dependency order (dependencies first).
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]string, 0, len(g.nodes))
	visited := make(map[string]bool, len(g.nodes))

	var visit func(string)
	visit = func(key string) {
		if visited[key] {
			return
		}
		visited[key] = true
		for _, dep := range g.edges[key] {
			visit(dep)
		}
		result = append(result, key)
	}

	for _, key := range g.sortedKeys() {
		visit(key)
	}

	return result, nil
}

// DetectCycles returns a CircularDependencyError for the first cycle found.
func (g *DependencyGraph) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		white = iota
		grey
		black
	)

	color := make(map[string]int, len(g.nodes))
	var stack []string

	var visit func(string) error
	visit = func(key string) error {
		color[key] = grey
		stack = append(stack, key)

		for _, dep := range g.edges[key] {
			switch color[dep] {
			case grey:
				start := 0
				for i, k := range stack {
					if k == dep {
						start = i
						break
					}
				}
				return CircularDependencyError{
					Node: dep,
					Path: append([]string(nil), stack[start:]...),
				}
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[key] = black
		return nil
	}

	for _, key := range g.sortedKeys() {
		if color[key] == white {
			if err := visit(key); err != nil {
				return err
			}
		}
	}

	return nil
}
