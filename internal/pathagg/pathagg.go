// Package pathagg groups flat records into a nested mapping addressed by
// string key paths. Intermediate levels are created on demand and every
// level remembers the order in which its keys were first seen.
package pathagg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPath is returned when a key function yields no path segments.
var ErrEmptyPath = errors.New("empty key path")

// PathCollisionError reports a record whose path ends on an intermediate
// level, or passes through a level that already holds a leaf.
type PathCollisionError struct {
	Path []string
	// At is the index of the segment where the collision was detected.
	At int
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("path collision at %q in %q",
		strings.Join(e.Path[:e.At+1], "/"), strings.Join(e.Path, "/"))
}

type node[L any] struct {
	children map[string]*node[L]
	order    []string
	leaf     L
	isLeaf   bool
}

func newNode[L any]() *node[L] {
	return &node[L]{children: make(map[string]*node[L])}
}

func (n *node[L]) child(key string) *node[L] {
	c, ok := n.children[key]
	if !ok {
		c = newNode[L]()
		n.children[key] = c
		n.order = append(n.order, key)
	}
	return c
}

// Tree is the nested mapping built by Aggregate.
type Tree[L any] struct {
	root *node[L]
}

// KeyFunc extracts the key path of a record.
type KeyFunc[T any] func(T) ([]string, error)

// Aggregate walks records in order, creating levels along each key path and
// folding every record into the leaf at the end of its path. init is called
// once per leaf on first visit; update is applied to every record reaching
// the leaf, including the first one.
func Aggregate[T, L any](records []T, key KeyFunc[T], init func() L, update func(L, T) L) (*Tree[L], error) {
	t := &Tree[L]{root: newNode[L]()}
	for i, rec := range records {
		path, err := key(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := add(t, path, rec, init, update); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return t, nil
}

func add[T, L any](t *Tree[L], path []string, rec T, init func() L, update func(L, T) L) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	n := t.root
	for i, seg := range path {
		if n.isLeaf {
			return &PathCollisionError{Path: append([]string(nil), path...), At: i - 1}
		}
		n = n.child(seg)
	}
	if len(n.children) > 0 {
		return &PathCollisionError{Path: append([]string(nil), path...), At: len(path) - 1}
	}
	if !n.isLeaf {
		n.leaf = init()
		n.isLeaf = true
	}
	n.leaf = update(n.leaf, rec)
	return nil
}

func (t *Tree[L]) lookup(path []string) (*node[L], bool) {
	n := t.root
	for _, seg := range path {
		c, ok := n.children[seg]
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// Get returns the leaf stored at path.
func (t *Tree[L]) Get(path ...string) (L, bool) {
	n, ok := t.lookup(path)
	if !ok || !n.isLeaf {
		var zero L
		return zero, false
	}
	return n.leaf, true
}

// Keys lists the keys directly below path in first-seen order.
func (t *Tree[L]) Keys(path ...string) []string {
	n, ok := t.lookup(path)
	if !ok {
		return nil
	}
	return append([]string(nil), n.order...)
}

// Walk visits every leaf depth-first in first-seen key order. Returning an
// error from fn stops the walk.
func (t *Tree[L]) Walk(fn func(path []string, leaf L) error) error {
	return walk(t.root, nil, fn)
}

func walk[L any](n *node[L], prefix []string, fn func([]string, L) error) error {
	if n.isLeaf {
		return fn(append([]string(nil), prefix...), n.leaf)
	}
	for _, k := range n.order {
		if err := walk(n.children[k], append(prefix, k), fn); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of leaves in the tree.
func (t *Tree[L]) Len() int {
	count := 0
	_ = t.Walk(func([]string, L) error {
		count++
		return nil
	})
	return count
}
