package hxcontent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"golang.org/x/net/html"
)

// TestResult holds the rendered state of a container for testing.
//
// HTML is the container's inner HTML. Clones holds the HTML of each clone
// in anchor order, so a test can assert on order and content at once.
type TestResult struct {
	HTML       string
	Clones     []string
	StatusCode int
	Headers    http.Header
}

// TestRender renders a registry-managed container and splits the output per
// clone.
//
//	result, err := hxcontent.TestRender(reg, list)
//	if result.Len() != 3 || !result.CloneContains(0, "first") {
//	    t.Fatal("unexpected clones")
//	}
func TestRender(reg *Registry, container *html.Node) (*TestResult, error) {
	inner, err := InnerHTML(container)
	if err != nil {
		return nil, err
	}

	result := &TestResult{
		HTML:       inner,
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}
	for i := 0; i < reg.Len(container); i++ {
		var sb strings.Builder
		for _, n := range reg.CloneNodes(container, i) {
			if err := html.Render(&sb, n); err != nil {
				return nil, err
			}
		}
		result.Clones = append(result.Clones, sb.String())
	}
	return result, nil
}

// TestServe renders container through Render with a recorded HTTP request.
//
// Use it to check what an HTMX swap of the container would receive:
//
//	result, err := hxcontent.TestServe(context.Background(), reg, list)
//	if result.Headers.Get("Content-Type") != "text/html; charset=utf-8" { ... }
func TestServe(ctx context.Context, reg *Registry, container *html.Node) (*TestResult, error) {
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := Render(rec, req, container); err != nil {
		return nil, err
	}

	result, err := TestRender(reg, container)
	if err != nil {
		return nil, err
	}
	result.HTML = rec.Body.String()
	result.StatusCode = rec.Code
	result.Headers = rec.Header()
	return result, nil
}

// Len returns the number of clones rendered.
func (r *TestResult) Len() int {
	return len(r.Clones)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// CloneContains checks if the clone at index contains a substring.
func (r *TestResult) CloneContains(index int, substr string) bool {
	if index < 0 || index >= len(r.Clones) {
		return false
	}
	return strings.Contains(r.Clones[index], substr)
}
