// Package configtree implements the nested configuration tree shared by every
// scope: dot-path writes with collision checks, dot-path reads and the
// recursive replace merge used to build the effective view.
package configtree

import (
	"fmt"
	"reflect"
	"strings"
)

// Separator splits config paths into segments.
const Separator = "."

// Tree is a nested configuration mapping. Values are scalars, nil or Trees.
type Tree = map[string]any

// KeyExistsError is returned when a write would descend through an existing
// scalar or nil value. Path is the colliding prefix.
type KeyExistsError struct {
	Path string
}

func (e KeyExistsError) Error() string {
	return fmt.Sprintf("config key(%s) already exists", e.Path)
}

// Set writes value at path, creating intermediate trees as needed.
//
// Every existing segment on the way must hold a tree, except the last one,
// which is overwritten unless it holds nil.
func Set(tree Tree, path string, value any) error {
	segments := strings.Split(path, Separator)
	existing := make([]string, 0, len(segments))

	node := tree
	for i, seg := range segments {
		last := i == len(segments)-1

		current, ok := node[seg]
		if ok {
			existing = append(existing, seg)
			if current == nil {
				return KeyExistsError{Path: strings.Join(existing, Separator)}
			}
		}

		if last {
			node[seg] = Normalize(value)
			return nil
		}

		if !ok {
			child := make(Tree)
			node[seg] = child
			node = child
			continue
		}

		child, isTree := current.(Tree)
		if !isTree {
			return KeyExistsError{Path: strings.Join(existing, Separator)}
		}
		node = child
	}

	return nil
}

// Get walks path through tree. It reports false as soon as a segment is
// missing, holds nil, or the walk reaches a non-tree value early.
func Get(tree Tree, path string) (any, bool) {
	var node any = tree
	for _, seg := range strings.Split(path, Separator) {
		m, ok := node.(Tree)
		if !ok {
			return nil, false
		}

		v, ok := m[seg]
		if !ok || v == nil {
			return nil, false
		}
		node = v
	}

	return node, true
}

// Merge returns a new tree holding base recursively replaced by override.
// When both sides hold a tree for a key the trees are merged, otherwise the
// override value wins. Neither input is modified.
func Merge(base, override Tree) Tree {
	out := Clone(base)
	if out == nil {
		out = make(Tree)
	}
	mergeInto(out, override)
	return out
}

func mergeInto(target, source Tree) {
	for key, value := range source {
		if existing, ok := target[key].(Tree); ok {
			if src, ok := value.(Tree); ok {
				mergeInto(existing, src)
				continue
			}
		}

		target[key] = cloneValue(value)
	}
}

// Clone deep-copies tree. Nested trees are copied, leaves are shared.
func Clone(tree Tree) Tree {
	if tree == nil {
		return nil
	}

	out := make(Tree, len(tree))
	for k, v := range tree {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if t, ok := v.(Tree); ok {
		return Clone(t)
	}
	return v
}

// Normalize converts nested maps with string-like keys into Trees so that
// values decoded from YAML or built by hand walk the same way.
func Normalize(v any) any {
	switch m := v.(type) {
	case Tree:
		out := make(Tree, len(m))
		for k, val := range m {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(Tree, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(Tree, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	}

	return v
}

// NormalizeTree applies Normalize to every value of tree.
func NormalizeTree(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	return Normalize(tree).(Tree)
}
