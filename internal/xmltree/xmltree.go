// Package xmltree decodes loosely structured XML (RSS wrappers, CAP alerts)
// into a generic element tree that callers can query by local name without
// declaring Go structs for every feed variant.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var ErrEmptyDocument = errors.New("xml document has no root element")

// Value is what a child lookup yields: Text for a leaf without attributes,
// *Element for everything else (attributed leaves included).
type Value interface {
	isValue()
}

// Text is a leaf element that carried no attributes, collapsed to its content.
type Text string

func (Text) isValue() {}

type Element struct {
	Name     xml.Name
	Attrs    map[string]string
	Children []*Element

	text    string // own character data
	content string // all descendant character data in document order
}

func (*Element) isValue() {}

// TextOf reduces either variant to plain, trimmed text. For an element with
// children this is the text of the whole subtree in document order, so inline
// markup such as <b>Mumbai</b> inside a description is kept.
func TextOf(v Value) string {
	switch t := v.(type) {
	case Text:
		return strings.TrimSpace(string(t))
	case *Element:
		if t == nil {
			return ""
		}
		if len(t.Children) == 0 {
			return t.text
		}
		return t.Content()
	default:
		return ""
	}
}

// Decode parses a whole document. Declared non-UTF-8 encodings are converted
// and HTML named entities (&nbsp; and friends) are accepted.
func Decode(doc []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity

	var (
		root  *Element
		stack []*Element
		texts []*strings.Builder
		fulls []*strings.Builder
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name}
			if len(t.Attr) > 0 {
				el.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs[attrKey(a.Name)] = a.Value
				}
			}
			// element boundaries separate words in the ancestors' content
			for _, f := range fulls {
				f.WriteByte(' ')
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})
			fulls = append(fulls, &strings.Builder{})
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
			for _, f := range fulls {
				f.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			el := stack[len(stack)-1]
			el.text = strings.TrimSpace(texts[len(texts)-1].String())
			el.content = strings.Join(strings.Fields(fulls[len(fulls)-1].String()), " ")
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
			fulls = fulls[:len(fulls)-1]
			for _, f := range fulls {
				f.WriteByte(' ')
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

func attrKey(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	default:
		return n.Local
	}
}

// IsLeaf reports whether the element has no child elements and no attributes.
func (e *Element) IsLeaf() bool {
	return len(e.Children) == 0 && len(e.Attrs) == 0
}

func (e *Element) value() Value {
	if e.IsLeaf() {
		return Text(e.text)
	}
	return e
}

// Child returns the first direct child with the given local name, or nil.
func (e *Element) Child(local string) Value {
	if c := e.ChildElement(local); c != nil {
		return c.value()
	}
	return nil
}

func (e *Element) ChildElement(local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

func (e *Element) ChildrenNamed(local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// ChildText is TextOf(e.Child(local)).
func (e *Element) ChildText(local string) string {
	if e == nil {
		return ""
	}
	return TextOf(e.Child(local))
}

func (e *Element) Attr(name string) (string, bool) {
	if e == nil || e.Attrs == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// Find returns every descendant (not e itself) with the given local name in
// document order.
func (e *Element) Find(local string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.Children {
			if c.Name.Local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if e != nil {
		walk(e)
	}
	return out
}

// Content is the character data of e and all its descendants in document
// order, with runs of whitespace collapsed to single spaces.
func (e *Element) Content() string {
	if e == nil {
		return ""
	}
	return e.content
}
