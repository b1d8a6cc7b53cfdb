package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on one element node within a Document. Handles are
// only valid for the lifetime of the document they came from; anything that
// must survive serialization is represented as selector strings and
// rendered HTML instead.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node exposes the underlying parse tree node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the document this handle belongs to.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	e.removeChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&b, c)
	}
	return b.String()
}

// SetInnerHTML replaces the element's children with a parsed fragment.
// Unlike CreateFromHTML this keeps the fragment's text nodes.
func (e *Element) SetInnerHTML(fragment string) error {
	context := &html.Node{Type: html.ElementNode, DataAtom: e.node.DataAtom, Data: e.node.Data}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return err
	}
	e.removeChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// OuterHTML serializes the element itself.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	html.Render(&b, e.node)
	return b.String()
}

func (e *Element) removeChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// Attr returns an attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or overwrites an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr drops an attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// ID returns the element's id attribute, if any.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Parent returns the parent element, or nil at the tree root or when the
// parent is not an element node.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{node: p, doc: e.doc}
}

// NextElement returns the next sibling that is an element, or nil.
func (e *Element) NextElement() *Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return &Element{node: s, doc: e.doc}
		}
	}
	return nil
}

// PrevElement returns the previous sibling that is an element, or nil.
func (e *Element) PrevElement() *Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return &Element{node: s, doc: e.doc}
		}
	}
	return nil
}

// Remove detaches the element from the document. Safe to call on an
// already-detached element.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// InsertBefore places e immediately before target, detaching it first.
func (e *Element) InsertBefore(target *Element) {
	parent := target.node.Parent
	if parent == nil {
		return
	}
	e.Remove()
	parent.InsertBefore(e.node, target.node)
}

// InsertAfter places e immediately after target, detaching it first.
func (e *Element) InsertAfter(target *Element) {
	parent := target.node.Parent
	if parent == nil {
		return
	}
	e.Remove()
	if target.node.NextSibling != nil {
		parent.InsertBefore(e.node, target.node.NextSibling)
	} else {
		parent.AppendChild(e.node)
	}
}

// PrependTo makes e the first child of target, detaching it first.
func (e *Element) PrependTo(target *Element) {
	e.Remove()
	if target.node.FirstChild != nil {
		target.node.InsertBefore(e.node, target.node.FirstChild)
	} else {
		target.node.AppendChild(e.node)
	}
}

// AppendTo makes e the last child of target, detaching it first.
func (e *Element) AppendTo(target *Element) {
	e.Remove()
	target.node.AppendChild(e.node)
}
