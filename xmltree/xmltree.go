// Package xmltree reads an XML document into a tree of named nodes that keeps
// document order for both children and attributes and remembers the source line
// of every element.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/ossrs/go-oryx-lib/errors"
)

type Attr struct {
	Name  string
	Value string
}

type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	// Text is the character data found directly inside the element.
	Text string
	Line int
}

// Attr returns the value of the named attribute.
func (node *Node) Attr(name string) (string, bool) {
	for _, attr := range node.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}

	return "", false
}

func (node *Node) HasAttrs() bool {
	return len(node.Attrs) != 0
}

func (node *Node) HasChildren() bool {
	return len(node.Children) != 0
}

// lineCounter maps byte offsets to 1-based line numbers. Offsets must be
// requested in increasing order.
type lineCounter struct {
	data   []byte
	offset int64
	line   int
}

func (counter *lineCounter) lineAt(offset int64) int {
	if offset > int64(len(counter.data)) {
		offset = int64(len(counter.data))
	}

	if offset > counter.offset {
		counter.line += bytes.Count(counter.data[counter.offset:offset], []byte{'\n'})
		counter.offset = offset
	}

	return counter.line
}

func Parse(reader io.Reader) (*Node, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "read xml")
	}

	return ParseBytes(data)
}

func ParseFile(filename string) (*Node, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %v", filename)
	}

	root, err := ParseBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %v", filename)
	}

	return root, nil
}

func ParseBytes(data []byte) (*Node, error) {
	var decoder = xml.NewDecoder(bytes.NewReader(data))
	var lines = lineCounter{data: data, line: 1}

	var root *Node
	var stack []*Node
	var text []*strings.Builder

	for {
		var start = decoder.InputOffset()

		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "xml line %v", lines.lineAt(decoder.InputOffset()))
		}

		switch tok := token.(type) {
		case xml.StartElement:
			var node = &Node{
				Name: tok.Name.Local,
				Line: lines.lineAt(start),
			}

			for _, attr := range tok.Attr {
				node.Attrs = append(node.Attrs, Attr{attr.Name.Local, attr.Value})
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, errors.Errorf("second root element %v at line %v", node.Name, node.Line)
				}
				root = node
			} else {
				var parent = stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}

			stack = append(stack, node)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			var node = stack[len(stack)-1]
			node.Text = text[len(text)-1].String()

			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			if len(text) != 0 {
				text[len(text)-1].Write(tok)
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}

	return root, nil
}
