package hxcontent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// Component returns a templ component that renders the children of
// container, i.e. its inner HTML.
//
// Use it to drop a registry-managed container into a templ layout:
//
//	@hxcontent.Component(list)
func Component(container *html.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderChildren(w, container)
	})
}

// Render writes the inner HTML of container to the HTTP response.
//
// Sets Content-Type to text/html. Suitable for answering an HTMX request
// that swaps the container's innerHTML.
func Render(w http.ResponseWriter, r *http.Request, container *html.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return Component(container).Render(r.Context(), w)
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := renderChildren(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// OuterHTML serializes n itself.
func OuterHTML(n *html.Node) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: node must not be nil", ErrInvalidArgument)
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderChildren(w io.Writer, n *html.Node) error {
	if n == nil {
		return fmt.Errorf("%w: node must not be nil", ErrInvalidArgument)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}
