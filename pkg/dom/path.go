package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// SelectorPath generates a CSS selector that re-identifies the element
// after serialization. An element with an id gets the id shortcut; anything
// else gets a child-combinator path anchored at the nearest id-bearing
// ancestor or at the tag root, with nth-of-type disambiguation only where
// an element actually has same-tag siblings.
func SelectorPath(e *Element) string {
	if e == nil {
		return ""
	}
	if id := e.ID(); id != "" {
		return "#" + id
	}

	var segments []string
	for cur := e; cur != nil; cur = cur.Parent() {
		if id := cur.ID(); id != "" {
			segments = append([]string{"#" + id}, segments...)
			break
		}
		segments = append([]string{pathSegment(cur)}, segments...)
		if cur.Tag() == "body" || cur.Tag() == "html" {
			break
		}
	}
	return strings.Join(segments, " > ")
}

func pathSegment(e *Element) string {
	tag := e.Tag()
	if !hasSameTagSibling(e) {
		return tag
	}
	return fmt.Sprintf("%s:nth-of-type(%d)", tag, tagOrdinal(e))
}

func hasSameTagSibling(e *Element) bool {
	parent := e.node.Parent
	if parent == nil {
		return false
	}
	for s := parent.FirstChild; s != nil; s = s.NextSibling {
		if s != e.node && s.Type == html.ElementNode && s.Data == e.node.Data {
			return true
		}
	}
	return false
}

// tagOrdinal is the 1-based index of the element among same-tag siblings.
func tagOrdinal(e *Element) int {
	n := 1
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == e.node.Data {
			n++
		}
	}
	return n
}
