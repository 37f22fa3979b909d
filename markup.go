package hxcontent

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the content of a <body> element and
// returns a detached document node holding the result. Pass the holder to
// Normalize, then move its children into a container before Extract.
func ParseFragment(r io.Reader) (*html.Node, error) {
	return ParseFragmentIn(r, &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
}

// ParseFragmentIn parses markup in the given context element. Use it for
// content that is only valid inside a specific parent, such as <tr> rows in
// a <tbody>.
func ParseFragmentIn(r io.Reader, context *html.Node) (*html.Node, error) {
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("hxcontent: parse fragment: %w", err)
	}
	holder := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		holder.AppendChild(n)
	}
	return holder, nil
}

// AdoptChildren moves every child of src to the end of dst.
func AdoptChildren(dst, src *html.Node) {
	for n := src.FirstChild; n != nil; n = src.FirstChild {
		src.RemoveChild(n)
		dst.AppendChild(n)
	}
}

// FindByID returns the first element below root with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode {
		if v, ok := Attr(root, "id"); ok && v == id {
			return root
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// cloneNode returns a detached deep copy of n.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// cloneChildren deep-copies the children of holder.
func cloneChildren(holder *html.Node) []*html.Node {
	var out []*html.Node
	for n := holder.FirstChild; n != nil; n = n.NextSibling {
		out = append(out, cloneNode(n))
	}
	return out
}

func countChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// describe renders a short label such as "ul#todos" for log fields.
func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		var sb strings.Builder
		sb.WriteString(n.Data)
		if id, ok := Attr(n, "id"); ok && id != "" {
			sb.WriteString("#")
			sb.WriteString(id)
		}
		return sb.String()
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return "#text"
	default:
		return fmt.Sprintf("#node(%d)", n.Type)
	}
}
