// Package namespace provides a hierarchical name directory for entities.
//
// Paths are dot-separated ("std.collections"); a qualified name appends the
// entity's own name ("std.collections.List"). Entities are exported into a
// namespace and looked up by qualified name from anywhere, which is how
// cross-file parent and interface references resolve.
package namespace

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/omen/pkg/object"
)

// Separator joins path segments in qualified names.
const Separator = "."

// Directory errors.
var (
	ErrInvalidPath       = errors.New("invalid namespace path")
	ErrNamespaceNotFound = errors.New("namespace not found")
	ErrNotExported       = errors.New("name not exported")
	ErrAlreadyExported   = errors.New("name already exported")
)

// Directory is the root of a namespace tree.
type Directory struct {
	root *node
}

type node struct {
	children map[string]*node
	exports  map[string]*object.Entity
}

func newNode() *node {
	return &node{
		children: make(map[string]*node),
		exports:  make(map[string]*object.Entity),
	}
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{root: newNode()}
}

// Declare creates the namespace at path, including intermediates. Declaring
// an existing namespace is a no-op.
func (d *Directory) Declare(path string) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	n := d.root
	for _, seg := range segments {
		child, ok := n.children[seg]
		if !ok {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	return nil
}

// Export registers an entity under its own name inside the namespace at
// path. The namespace must have been declared. Re-exporting a name fails
// with ErrAlreadyExported.
func (d *Directory) Export(path string, e *object.Entity) error {
	n, err := d.find(path)
	if err != nil {
		return err
	}
	if _, ok := n.exports[e.Name()]; ok {
		return fmt.Errorf("%s%s%s: %w", path, Separator, e.Name(), ErrAlreadyExported)
	}
	n.exports[e.Name()] = e
	return nil
}

// Lookup resolves a qualified name ("std.collections.List") to its entity.
func (d *Directory) Lookup(qualified string) (*object.Entity, error) {
	segments, err := splitPath(qualified)
	if err != nil {
		return nil, err
	}
	if len(segments) < 2 {
		return nil, fmt.Errorf("%q: %w: qualified name needs a namespace", qualified, ErrInvalidPath)
	}
	path := strings.Join(segments[:len(segments)-1], Separator)
	name := segments[len(segments)-1]

	n, err := d.find(path)
	if err != nil {
		return nil, err
	}
	e, ok := n.exports[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", qualified, ErrNotExported)
	}
	return e, nil
}

// Import returns the namespace's exports as a name-to-entity view. Mutating
// the returned map does not affect the directory.
func (d *Directory) Import(path string) (map[string]*object.Entity, error) {
	n, err := d.find(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*object.Entity, len(n.exports))
	for name, e := range n.exports {
		out[name] = e
	}
	return out, nil
}

// Names returns the exported names of a namespace, sorted.
func (d *Directory) Names(path string) ([]string, error) {
	n, err := d.find(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.exports))
	for name := range n.exports {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (d *Directory) find(path string) (*node, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	n := d.root
	for _, seg := range segments {
		child, ok := n.children[seg]
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrNamespaceNotFound)
		}
		n = child
	}
	return n, nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	segments := strings.Split(path, Separator)
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%q: %w", path, ErrInvalidPath)
		}
	}
	return segments, nil
}
