package hxcontent

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// EncodeContext seals the resolved context of the clone at index.
//
// Signed snapshots are readable by clients but tamper-proof; sensitive ones
// are encrypted. ErrNotFound is returned when index does not address a clone
// with a context.
func (reg *Registry) EncodeContext(container *html.Node, index int, sensitive bool) (string, error) {
	if container == nil {
		return "", fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.contents[container]
	if !ok {
		return "", ErrUninitialized
	}
	if index < 0 || index >= len(c.anchors) || c.anchors[index] == nil {
		return "", fmt.Errorf("%w: no clone at index %d", ErrNotFound, index)
	}
	state := reg.contexts[c.anchors[index]]
	if state == nil {
		return "", fmt.Errorf("%w: clone %d has no context", ErrNotFound, index)
	}

	encoded, err := reg.encoder.Encode(state, sensitive)
	return encoded, wrapEncodingError(err)
}

// DecodeContext opens a snapshot produced by EncodeContext or
// StampContexts. sensitive must match the mode it was sealed with.
func (reg *Registry) DecodeContext(encoded string, sensitive bool) (map[string]any, error) {
	values, err := reg.encoder.Decode(encoded, sensitive)
	if err != nil {
		return nil, wrapEncodingError(err)
	}
	return values, nil
}

// StampContexts writes the sealed context of each clone onto its anchor
// under the registry's context attribute. Clones whose anchor is not an
// element, or that carry no context, are skipped. It returns the number of
// anchors stamped.
func (reg *Registry) StampContexts(container *html.Node, sensitive bool) (int, error) {
	if container == nil {
		return 0, fmt.Errorf("%w: container must be a node", ErrInvalidArgument)
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.contents[container]
	if !ok {
		return 0, ErrUninitialized
	}

	stamped := 0
	for _, anchor := range c.anchors {
		if anchor == nil || anchor.Type != html.ElementNode {
			continue
		}
		state := reg.contexts[anchor]
		if state == nil {
			continue
		}
		encoded, err := reg.encoder.Encode(state, sensitive)
		if err != nil {
			return stamped, wrapEncodingError(err)
		}
		setAttr(anchor, reg.contextAttr, encoded)
		stamped++
	}

	reg.logger.Debug("contexts stamped",
		zap.String("container", describe(container)),
		zap.Int("stamped", stamped),
		zap.Bool("sensitive", sensitive))
	return stamped, nil
}
