package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// unsafeElements are removed entirely when sanitizing user-provided markup.
func unsafeElement(tagName string) bool {
	unsafe := map[string]bool{
		"script":   true,
		"noscript": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"base":     true,
	}
	return unsafe[tagName]
}

// unsafeAttribute reports whether an attribute can introduce script
// execution: inline event handlers and javascript: URLs.
func unsafeAttribute(key, value string) bool {
	if strings.HasPrefix(strings.ToLower(key), "on") {
		return true
	}
	switch strings.ToLower(key) {
	case "href", "src", "action", "formaction", "xlink:href":
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), "javascript:")
	}
	return false
}

// Sanitize strips script-bearing content from the element and its subtree:
// script/iframe style elements are removed, inline event handlers and
// javascript: URLs are dropped. The element itself is removed if unsafe and
// the method reports whether it survived.
func (e *Element) Sanitize() bool {
	if unsafeElement(e.Tag()) {
		e.Remove()
		return false
	}
	sanitizeNode(e.node)
	return true
}

func sanitizeNode(n *html.Node) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			if !unsafeAttribute(attr.Key, attr.Val) {
				kept = append(kept, attr)
			}
		}
		n.Attr = kept
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && unsafeElement(strings.ToLower(c.Data)) {
			n.RemoveChild(c)
		} else if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			sanitizeNode(c)
		}
		c = next
	}
}
