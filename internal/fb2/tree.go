package fb2

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// node is a minimal element-tree representation of one XML element.
//
// FB2 paragraphs are mixed content: character data interleaved with inline
// elements. The stream decoder in encoding/xml does not preserve that shape
// by itself, so the tree keeps both the text before the first child (text)
// and the text following each element inside its parent (tail).
type node struct {
	local    string
	attrs    []xml.Attr
	text     string
	tail     string
	children []*node
}

var errNoRootElement = errors.New("fb2: document has no root element")

// buildTree decodes raw XML bytes into an element tree rooted at the
// document element. Namespace prefixes are dropped; FB2 elements are
// matched by local name only.
func buildTree(raw []byte) (*node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charsetReader
	// Old FB2 files occasionally carry stray entities and unclosed tags
	// produced by converters; be lenient the way lxml-based readers are.
	decoder.Strict = false

	var root *node
	var stack []*node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fb2: malformed document: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			n := &node{local: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("fb2: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			if len(current.children) == 0 {
				current.text += string(t)
			} else {
				last := current.children[len(current.children)-1]
				last.tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRootElement
	}
	return root, nil
}

// attr returns the value of the named attribute, or "" when absent.
func (n *node) attr(name string) string {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// findFirst returns the first descendant with the given local name in
// document order, or nil.
func (n *node) findFirst(local string) *node {
	for _, child := range n.children {
		if child.local == local {
			return child
		}
		if found := child.findFirst(local); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant with the given local name in document
// order. The receiver itself is never included.
func (n *node) findAll(local string) []*node {
	var out []*node
	for _, child := range n.children {
		if child.local == local {
			out = append(out, child)
		}
		out = append(out, child.findAll(local)...)
	}
	return out
}

// charsetReader decodes legacy encodings declared in the XML prolog.
// Russian FB2 archives are full of windows-1251 files.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	encoding, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("fb2: unsupported charset %q: %w", charset, err)
	}
	return encoding.NewDecoder().Reader(input), nil
}
