package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/arbor"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is the value of a tree node built from HTML.
type Element struct {
	Type html.NodeType
	Tag  string // element name for element nodes
	Text string // content of text and comment nodes
	Attr []html.Attribute
}

// Clone copies e including its attributes.
func (e Element) Clone() Element {
	if e.Attr != nil {
		e.Attr = append([]html.Attribute(nil), e.Attr...)
	}
	return e
}

// Attribute returns the value of attribute key, and whether it is present.
func (e Element) Attribute(key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e Element) String() string {
	switch e.Type {
	case html.ElementNode:
		return "<" + e.Tag + ">"
	case html.TextNode:
		return fmt.Sprintf("%q", e.Text)
	case html.CommentNode:
		return "<!--" + e.Text + "-->"
	case html.DocumentNode:
		return "#fragment"
	}
	return "?"
}

func elementOf(n *html.Node) Element {
	e := Element{Type: n.Type}
	switch n.Type {
	case html.ElementNode:
		e.Tag = n.Data
		e.Attr = append([]html.Attribute(nil), n.Attr...)
	case html.TextNode, html.CommentNode:
		e.Text = n.Data
	}
	return e
}

// skip reports whether a DOM node does not belong into a tree: doctypes and
// text consisting of white space only.
func skip(n *html.Node) bool {
	switch n.Type {
	case html.DoctypeNode, html.ErrorNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	}
	return false
}

// Parse reads an HTML fragment, parsed in the context of a <body> element.
// The tree's root is of type html.DocumentNode, with the top level nodes of
// the fragment as its children.
func Parse(input io.Reader) (*arbor.Tree[Element], error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(input, body)
	if err != nil {
		tracer().Errorf("html: cannot parse fragment: %v", err)
		return nil, err
	}
	tree := arbor.WithRoot(Element{Type: html.DocumentNode})
	root := tree.Entrance()
	for _, n := range nodes {
		if skip(n) {
			continue
		}
		if _, err = tree.AppendMove(root, FromNode(n)); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("html: fragment with %d top level nodes", root.ChildCount())
	return tree, nil
}

// FromNode creates a tree from the DOM subtree at n.
func FromNode(n *html.Node) *arbor.Tree[Element] {
	tree := arbor.WithRoot(elementOf(n))
	collect(tree, tree.Entrance(), n)
	return tree
}

func collect(tree *arbor.Tree[Element], at arbor.Traverser[Element], n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if skip(c) {
			continue
		}
		child, err := tree.AppendChild(at, elementOf(c))
		if err != nil {
			panic(err) // at is a node of tree
		}
		collect(tree, child, c)
	}
}

// Render writes the subtree at entrance as nested unordered lists:
//
//	<ul><li>+<ul><li>1</li><li>2</li></ul></li></ul>
//
// Nothing is written for an invalid entrance. If label is nil, values are
// formatted with fmt.Sprint.
func Render[T any](w io.Writer, entrance arbor.ConstTraverser[T], label func(T) string) error {
	if !entrance.Valid() {
		return nil
	}
	if label == nil {
		label = func(v T) string { return fmt.Sprint(v) }
	}
	ul := &html.Node{Type: html.ElementNode, Data: "ul", DataAtom: atom.Ul}
	ul.AppendChild(listItem(entrance, label))
	return html.Render(w, ul)
}

func listItem[T any](c arbor.ConstTraverser[T], label func(T) string) *html.Node {
	li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
	li.AppendChild(&html.Node{Type: html.TextNode, Data: label(c.Value())})
	if c.IsLeaf() {
		return li
	}
	ul := &html.Node{Type: html.ElementNode, Data: "ul", DataAtom: atom.Ul}
	for ch := range c.Children() {
		ul.AppendChild(listItem(ch, label))
	}
	li.AppendChild(ul)
	return li
}
