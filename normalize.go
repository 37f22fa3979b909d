package hxcontent

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize prepares freshly parsed markup for use as a template.
//
// Elements get a fresh clone id attribute and are recursed into.
// Whitespace-only text nodes and every other node kind (comments, doctypes)
// are detached. Document nodes, such as the holder returned by
// ParseFragment, are walked without being stamped. Children are visited in
// reverse so detaching never skips a sibling.
//
// After normalization the first node of every clone is an element or a
// non-blank text node, which keeps anchors meaningful.
func (reg *Registry) Normalize(node *html.Node) {
	if node == nil {
		return
	}

	switch node.Type {
	case html.ElementNode:
		setAttr(node, reg.cloneAttr, reg.ids.Next())
		reg.normalizeChildren(node)
	case html.DocumentNode:
		reg.normalizeChildren(node)
	case html.TextNode:
		if strings.TrimSpace(node.Data) == "" {
			unlink(node)
		}
	default:
		unlink(node)
	}
}

func (reg *Registry) normalizeChildren(node *html.Node) {
	for n := node.LastChild; n != nil; {
		prev := n.PrevSibling
		reg.Normalize(n)
		n = prev
	}
}

func unlink(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// setAttr sets key on an element, replacing an existing value.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
