package hxcontent

import (
	"fmt"

	"golang.org/x/net/html"
)

// FindAncestor walks up from node's parent and returns the first ancestor
// for which match returns true. node itself is never tested. It returns nil
// when the root is reached without a match.
func FindAncestor(node *html.Node, match func(*html.Node) bool) (*html.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: first argument must be a node", ErrInvalidArgument)
	}
	if match == nil {
		return nil, fmt.Errorf("%w: second argument must be a function", ErrInvalidArgument)
	}

	n := node.Parent
	for n != nil && !match(n) {
		n = n.Parent
	}
	return n, nil
}

// FindAncestorProp returns the value of key from the nearest strict ancestor
// whose state defines it. A clone's top-level nodes expose their context;
// containers expose their own state. Fallback values count as defined.
//
// Unlike FindAncestor, which can signal absence with a nil node, a missing
// key is reported as ErrNotFound: a nil value is a legitimate stored value
// and must stay distinguishable from "no ancestor defines key".
func (reg *Registry) FindAncestorProp(node *html.Node, key string) (any, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var value any
	found, err := FindAncestor(node, func(n *html.Node) bool {
		v, ok := reg.stateOf(n).Get(key)
		if ok {
			value = v
		}
		return ok
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: no ancestor defines %q", ErrNotFound, key)
	}
	return value, nil
}

// FindAncestorState returns the state of the nearest strict ancestor that
// carries one, or nil.
func (reg *Registry) FindAncestorState(node *html.Node) (*State, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	found, err := FindAncestor(node, func(n *html.Node) bool {
		return reg.stateOf(n) != nil
	})
	if err != nil || found == nil {
		return nil, err
	}
	return reg.stateOf(found), nil
}

// stateOf returns the context of a clone node, falling back to the own
// state of a container. Callers hold reg.mu.
func (reg *Registry) stateOf(n *html.Node) *State {
	if s := reg.contexts[n]; s != nil {
		return s
	}
	return reg.own[n]
}
