// Package dom wraps an x/net/html parse tree in the small document surface
// the editing engine needs: CSS selector queries, element-level reads and
// writes, structural moves and selector path generation.
//
// Selector resolution intentionally returns every match; callers decide
// whether zero matches is an error or a no-op. Nothing in this package
// panics on missing nodes.
package dom

import (
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a live, mutable HTML document.
type Document struct {
	root *html.Node
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses an HTML document from a file on disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Render serializes the document back to HTML.
func (d *Document) Render() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, d.root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Query resolves a CSS selector group against the document and returns all
// matching elements in document order. An unparsable selector or a selector
// matching nothing both yield an empty slice.
func (d *Document) Query(selector string) []*Element {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil
	}
	nodes := cascadia.QueryAll(d.root, sel)
	elements := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Element{node: n, doc: d})
	}
	return elements
}

// QueryOne returns the first match for a selector, or nil.
func (d *Document) QueryOne(selector string) *Element {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil
	}
	n := cascadia.Query(d.root, sel)
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: d}
}

// Body returns the document's body element, or nil for fragment-less trees.
func (d *Document) Body() *Element {
	n := findElement(d.root, atom.Body)
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: d}
}

// CreateFromHTML builds elements from an HTML fragment. Only element nodes
// from the fragment are returned; stray text is dropped.
func (d *Document) CreateFromHTML(fragment string) ([]*Element, error) {
	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, err
	}
	var elements []*Element
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elements = append(elements, &Element{node: n, doc: d})
		}
	}
	return elements, nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
