package extractor

import (
	"bytes"
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// node is a minimal element tree; only local names are kept since the
// presentation parts use stable prefixes for a single namespace each.
type node struct {
	name     string
	attrs    []xml.Attr
	children []*node
	text     string
}

func parseXML(data []byte) (*node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	root := &node{}
	stack := []*node{root}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch element := tok.(type) {
		case xml.StartElement:
			n := &node{name: element.Name.Local, attrs: element.Attr}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			stack[len(stack)-1].text += string(element)
		}
	}

	return root, nil
}

// child returns the first direct child with the given local name
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// find returns the first descendant with the given local name, depth first
func (n *node) find(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
		if found := c.find(name); found != nil {
			return found
		}
	}
	return nil
}

// attr returns the value of an attribute; qualified selects namespaced
// attributes such as r:id over plain ones such as id.
func (n *node) attr(local string, qualified bool) string {
	for _, a := range n.attrs {
		if a.Name.Local != local {
			continue
		}
		if qualified == (a.Name.Space != "") {
			return a.Value
		}
	}
	return ""
}
