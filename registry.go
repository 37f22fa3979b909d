package hxcontent

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pthm/hxcontent/lib/cloneid"
)

// End selects the default position: insert appends, remove drops the last
// clone. Any negative index behaves the same way.
const End = -1

// Default attribute names.
const (
	DefaultCloneAttr   = "clone-id"
	DefaultContextAttr = "data-hx-context"
)

// content is the bookkeeping record for one container.
type content struct {
	template *html.Node   // detached holder of the extracted children
	anchors  []*html.Node // first node of each clone, in tree order
}

// boundary returns the first non-nil anchor at or after i. Clones of an
// empty template have nil anchors and occupy no position in the tree.
func (c *content) boundary(i int) *html.Node {
	for ; i >= 0 && i < len(c.anchors); i++ {
		if c.anchors[i] != nil {
			return c.anchors[i]
		}
	}
	return nil
}

// nodes returns the sibling run that makes up clone i.
func (c *content) nodes(i int) []*html.Node {
	start := c.anchors[i]
	if start == nil {
		return nil
	}
	until := c.boundary(i + 1)
	var out []*html.Node
	for n := start; n != nil && n != until; n = n.NextSibling {
		out = append(out, n)
	}
	return out
}

// Registry tracks extracted templates and inserted clones per container.
//
// Bookkeeping lives in side tables keyed by node identity, so containers are
// plain *html.Node values. The registry serializes its own calls, but a
// sequence of operations on one container (insert, then move, ...) must be
// ordered by the caller.
type Registry struct {
	mu       sync.RWMutex
	contents map[*html.Node]*content // map[container]record
	own      map[*html.Node]*State   // container state, fallback for clones
	contexts map[*html.Node]*State   // clone top-level node -> context

	encoder     *Encoder
	ids         *cloneid.Counter
	logger      *zap.Logger
	cloneAttr   string
	contextAttr string
}

// NewRegistry creates a content registry. key seeds the codec used for
// context snapshots; it may be empty when snapshots are not used.
func NewRegistry(key []byte, opts ...Option) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxcontent: failed to create encoder: %v", err))
	}

	reg := &Registry{
		contents:    make(map[*html.Node]*content),
		own:         make(map[*html.Node]*State),
		contexts:    make(map[*html.Node]*State),
		encoder:     enc,
		ids:         cloneid.Default(),
		logger:      zap.NewNop(),
		cloneAttr:   DefaultCloneAttr,
		contextAttr: DefaultContextAttr,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Encoder returns the registry's snapshot encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Counter returns the clone id counter used by Normalize.
func (reg *Registry) Counter() *cloneid.Counter {
	return reg.ids
}

// Extract moves every child of container into a new detached template and
// resets the container's clone list.
//
// Extract is not idempotent. A second call on the same container captures
// whatever children it has at that point (usually none) and replaces the
// stored template with it.
func (reg *Registry) Extract(container *html.Node) (*html.Node, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Clones still in the container become template content; their contexts
	// must not outlive them.
	if old, ok := reg.contents[container]; ok {
		for i := range old.anchors {
			for _, n := range old.nodes(i) {
				delete(reg.contexts, n)
			}
		}
	}

	template := &html.Node{Type: html.DocumentNode}
	for n := container.FirstChild; n != nil; n = container.FirstChild {
		container.RemoveChild(n)
		template.AppendChild(n)
	}

	reg.contents[container] = &content{template: template, anchors: []*html.Node{}}
	reg.logger.Debug("content extracted",
		zap.String("container", describe(container)),
		zap.Int("nodes", countChildren(template)))
	return template, nil
}

// Insert clones the container's template and places the clone before the
// clone currently at index. An index that is negative or past the end
// appends.
//
// When context is non-nil, a new State inheriting from the container's own
// state and holding a copy of context is attached to every top-level node of
// the clone. A nil context attaches nothing.
func (reg *Registry) Insert(container *html.Node, index int, context map[string]any) error {
	if container == nil {
		return fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	c, ok := reg.contents[container]
	if !ok || c.template == nil {
		return ErrUninitialized
	}

	nodes := cloneChildren(c.template)
	var first *html.Node
	if len(nodes) > 0 {
		first = nodes[0]
	}

	if context != nil {
		state := Inherit(reg.own[container], context)
		for _, n := range nodes {
			reg.contexts[n] = state
		}
	}

	inRange := index >= 0 && index < len(c.anchors)
	var before *html.Node
	if inRange {
		before = c.boundary(index)
	}
	for _, n := range nodes {
		container.InsertBefore(n, before)
	}

	if inRange {
		c.anchors = slices.Insert(c.anchors, index, first)
	} else {
		index = len(c.anchors)
		c.anchors = append(c.anchors, first)
	}

	reg.logger.Debug("content inserted",
		zap.String("container", describe(container)),
		zap.Int("index", index),
		zap.Int("clones", len(c.anchors)),
		zap.Bool("context", context != nil))
	return nil
}

// Remove deletes the clone at index. A negative or out-of-range index
// removes the last clone; removing from a container with no clones does
// nothing.
func (reg *Registry) Remove(container *html.Node, index int) error {
	if container == nil {
		return fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	c, ok := reg.contents[container]
	if !ok {
		return ErrUninitialized
	}
	if len(c.anchors) == 0 {
		return nil
	}
	if index < 0 || index >= len(c.anchors) {
		index = len(c.anchors) - 1
	}

	for _, n := range c.nodes(index) {
		reg.detach(n)
	}
	c.anchors = slices.Delete(c.anchors, index, index+1)

	reg.logger.Debug("content removed",
		zap.String("container", describe(container)),
		zap.Int("index", index),
		zap.Int("clones", len(c.anchors)))
	return nil
}

// Clear removes every child of container and empties its clone list. The
// extracted template is kept for later inserts.
func (reg *Registry) Clear(container *html.Node) error {
	if container == nil {
		return fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	for n := container.FirstChild; n != nil; n = container.FirstChild {
		reg.detach(n)
	}

	c, ok := reg.contents[container]
	if !ok {
		c = &content{}
		reg.contents[container] = c
	}
	c.anchors = []*html.Node{}

	reg.logger.Debug("content cleared", zap.String("container", describe(container)))
	return nil
}

// Move relocates the clone at from so that it ends up at position to.
//
// Positions are resolved after the clone is taken out, so the tree order and
// the clone list always agree: moving 0 to 2 in [a b c] yields [b c a]. A to
// that is negative or past the end appends. A from that does not address a
// clone is ignored.
//
// When extra is non-nil and the clone carries a context, extra is merged
// into that context in place.
func (reg *Registry) Move(container *html.Node, from, to int, extra map[string]any) error {
	if container == nil {
		return fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	c, ok := reg.contents[container]
	if !ok {
		return ErrUninitialized
	}
	if from < 0 || from >= len(c.anchors) {
		return nil
	}

	anchor := c.anchors[from]
	nodes := c.nodes(from)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	c.anchors = slices.Delete(c.anchors, from, from+1)

	if to >= 0 && to < len(c.anchors) {
		before := c.boundary(to)
		for _, n := range nodes {
			container.InsertBefore(n, before)
		}
		c.anchors = slices.Insert(c.anchors, to, anchor)
	} else {
		for _, n := range nodes {
			container.AppendChild(n)
		}
		to = len(c.anchors)
		c.anchors = append(c.anchors, anchor)
	}

	if extra != nil && anchor != nil {
		if state := reg.contexts[anchor]; state != nil {
			state.Merge(extra)
		}
	}

	reg.logger.Debug("content moved",
		zap.String("container", describe(container)),
		zap.Int("from", from),
		zap.Int("to", to))
	return nil
}

// MutateContext merges extra into the context of the clone at index. An
// index that does not address a clone, or a clone without context, is a
// no-op. extra must not be nil.
func (reg *Registry) MutateContext(container *html.Node, index int, extra map[string]any) error {
	if container == nil {
		return fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}
	if extra == nil {
		return fmt.Errorf("%w: context patch must be a map", ErrInvalidArgument)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	c, ok := reg.contents[container]
	if !ok {
		return ErrUninitialized
	}
	if index < 0 || index >= len(c.anchors) || c.anchors[index] == nil {
		return nil
	}
	if state := reg.contexts[c.anchors[index]]; state != nil {
		state.Merge(extra)
	}
	return nil
}

// SetState sets the container's own state, the fallback for the context of
// every clone inserted afterwards.
func (reg *Registry) SetState(container *html.Node, state *State) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if state == nil {
		delete(reg.own, container)
		return
	}
	reg.own[container] = state
}

// State returns the container's own state, or nil.
func (reg *Registry) State(container *html.Node) *State {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.own[container]
}

// Context returns the context attached to node, or nil. Only the top-level
// nodes of a clone carry a context.
func (reg *Registry) Context(node *html.Node) *State {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.contexts[node]
}

// ContextAt returns the context of the clone at index, or nil.
func (reg *Registry) ContextAt(container *html.Node, index int) *State {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.contents[container]
	if !ok || index < 0 || index >= len(c.anchors) || c.anchors[index] == nil {
		return nil
	}
	return reg.contexts[c.anchors[index]]
}

// Len returns the number of clones in container.
func (reg *Registry) Len(container *html.Node) int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if c, ok := reg.contents[container]; ok {
		return len(c.anchors)
	}
	return 0
}

// Anchors returns a copy of the container's anchor list.
func (reg *Registry) Anchors(container *html.Node) []*html.Node {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if c, ok := reg.contents[container]; ok {
		return slices.Clone(c.anchors)
	}
	return nil
}

// CloneNodes returns the top-level nodes of the clone at index.
func (reg *Registry) CloneNodes(container *html.Node, index int) []*html.Node {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.contents[container]
	if !ok || index < 0 || index >= len(c.anchors) {
		return nil
	}
	return c.nodes(index)
}

// Forget drops all bookkeeping for container. The tree is left untouched.
func (reg *Registry) Forget(container *html.Node) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if c, ok := reg.contents[container]; ok {
		for i := range c.anchors {
			for _, n := range c.nodes(i) {
				delete(reg.contexts, n)
			}
		}
	}
	delete(reg.contents, container)
	delete(reg.own, container)
}

// detach unlinks n from its parent and drops its context entry.
func (reg *Registry) detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	delete(reg.contexts, n)
}
