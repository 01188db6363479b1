// Package fixture builds topaz.Document and topaz.Tag trees in a
// declarative style, for use in tests that would otherwise need deeply
// nested *topaz.Tag struct literals with manually-computed dotted Names.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//	import . "github.com/tpzdecode/topaz/fixture"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package fixture

import "github.com/tpzdecode/topaz"

// element is either a Node (a child tag) or an Args declaration, the two
// kinds of value Node accepts as variadic elements.
type element interface {
	element()
}

type node struct {
	name     string
	typ      topaz.ArgType
	args     []topaz.Arg
	children []node
}

func (node) element() {}

// Node declares a Tag. name is this tag's own path segment, not its full
// dotted path; Build computes the dotted Name from nesting, the same way
// the Page Parser's TagPath does. elements may be Args (at most one
// meaningfully takes effect; later ones win) and further Node declarations,
// which become children.
func Node(name string, typ topaz.ArgType, elements ...element) node {
	n := node{name: name, typ: typ}
	for _, e := range elements {
		switch e := e.(type) {
		case argsDecl:
			n.args = e.values
		case node:
			n.children = append(n.children, e)
		}
	}
	return n
}

type argsDecl struct {
	values []topaz.Arg
}

func (argsDecl) element() {}

// Args declares the literal argument values of the enclosing Node.
func Args(values ...topaz.Arg) element {
	return argsDecl{values: values}
}

// Numbers is a convenience for Args built from plain int64s, for the common
// case of a numeric or vector argument list.
func Numbers(values ...int64) element {
	args := make([]topaz.Arg, len(values))
	for i, v := range values {
		args[i] = topaz.ArgNumber(v)
	}
	return argsDecl{values: args}
}

// Text is a convenience for a single dictionary-resolved argument.
func Text(value string) element {
	return argsDecl{values: []topaz.Arg{topaz.ArgTextValue(value)}}
}

func build(n node, prefix string) *topaz.Tag {
	full := n.name
	if prefix != "" {
		full = prefix + "." + n.name
	}
	tag := &topaz.Tag{
		Name: full,
		Type: n.typ,
	}
	if len(n.args) > 0 {
		tag.Args = append([]topaz.Arg{}, n.args...)
	}
	for _, c := range n.children {
		tag.Children = append(tag.Children, build(c, full))
	}
	return tag
}

// docElement is either a root Node or a Snip declaration.
type docElement interface {
	docElement()
}

func (node) docElement() {}

type snipDecl struct {
	index int
	root  node
}

func (snipDecl) docElement() {}

// Snip declares a topaz.Snippet at the given index, built from root the same
// way a Node used as a Doc root is.
func Snip(index int, root node) docElement {
	return snipDecl{index: index, root: root}
}

// Doc declares a topaz.Document: a sequence of root Node declarations and
// Snip declarations, in any order.
type Doc []docElement

// Build evaluates the declaration, producing a *topaz.Document with every
// Tag's dotted Name computed from its nesting.
func (d Doc) Build() *topaz.Document {
	doc := &topaz.Document{}
	for _, e := range d {
		switch e := e.(type) {
		case node:
			doc.Roots = append(doc.Roots, build(e, ""))
		case snipDecl:
			doc.Snippets = append(doc.Snippets, topaz.Snippet{Index: e.index, Root: build(e.root, "")})
		}
	}
	return doc
}

// Build evaluates a single Node declaration in isolation, as a root tag (no
// ancestor prefix).
func Build(n node) *topaz.Tag {
	return build(n, "")
}
