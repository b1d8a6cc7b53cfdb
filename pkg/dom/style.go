package dom

import "strings"

// styleProp is one declaration in an inline style attribute. Order is
// preserved across rewrites so diffs against the source stay readable.
type styleProp struct {
	name  string
	value string
}

func parseStyle(attr string) []styleProp {
	var props []styleProp
	for _, decl := range strings.Split(attr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		props = append(props, styleProp{name: name, value: value})
	}
	return props
}

func renderStyle(props []styleProp) string {
	var b strings.Builder
	for _, p := range props {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.name)
		b.WriteString(": ")
		b.WriteString(p.value)
	}
	return b.String()
}

// Style returns the value of one inline style property, or "".
func (e *Element) Style(name string) string {
	attr, _ := e.Attr("style")
	for _, p := range parseStyle(attr) {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// StyleMap returns all inline style properties.
func (e *Element) StyleMap() map[string]string {
	attr, _ := e.Attr("style")
	props := parseStyle(attr)
	out := make(map[string]string, len(props))
	for _, p := range props {
		out[p.name] = p.value
	}
	return out
}

// SetStyle writes one inline style property. An empty value removes the
// property; an empty resulting declaration list removes the style attribute.
func (e *Element) SetStyle(name, value string) {
	attr, _ := e.Attr("style")
	props := parseStyle(attr)

	if value == "" {
		kept := props[:0]
		for _, p := range props {
			if p.name != name {
				kept = append(kept, p)
			}
		}
		props = kept
	} else {
		found := false
		for i := range props {
			if props[i].name == name {
				props[i].value = value
				found = true
				break
			}
		}
		if !found {
			props = append(props, styleProp{name: name, value: value})
		}
	}

	if len(props) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", renderStyle(props))
}

// Classes returns the element's class list in document order.
func (e *Element) Classes() []string {
	attr, _ := e.Attr("class")
	return strings.Fields(attr)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends a class if not already present.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	classes := append(e.Classes(), name)
	e.SetAttr("class", strings.Join(classes, " "))
}

// RemoveClass drops a class if present. An emptied class list removes the
// attribute.
func (e *Element) RemoveClass(name string) {
	classes := e.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}
