// Package format renders a decoded topaz.Document as text, in either of the
// two textual forms the original tooling produced: a nested, nodename-only
// XML-like tree (formatTag), or a flat one-line-per-tag dump that spells out
// each tag's full dotted path (flattenTag). Neither form is validated
// against an XML schema; both are line-oriented text meant for diffing and
// spot-checking a decode, not for round-tripping back into a Document.
package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/tpzdecode/topaz"
)

// Nested renders doc the way WriteNested does, returning the result as a
// string.
func Nested(doc *topaz.Document) (string, error) {
	var b strings.Builder
	if err := WriteNested(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Flat renders doc the way WriteFlat does, returning the result as a string.
func Flat(doc *topaz.Document) (string, error) {
	var b strings.Builder
	if err := WriteFlat(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteNested writes doc's root tags to w as an indented tree: each tag
// becomes "<shortname>args</shortname>", indented three spaces per level of
// nesting, with children recursed between the open and close tags (spec.md
// §4.4, nested form). It implements formatTag/formatDoc.
func WriteNested(w io.Writer, doc *topaz.Document) error {
	bw := bufio.NewWriter(w)
	for _, root := range doc.Roots {
		if root == nil {
			continue
		}
		writeTagNested(bw, root)
	}
	return bw.Flush()
}

// WriteFlat writes doc's root tags to w as one line per tag, each spelling
// out its full dotted Name rather than nesting children visually (spec.md
// §4.4, flat form). It implements flattenTag/formatDoc.
func WriteFlat(w io.Writer, doc *topaz.Document) error {
	bw := bufio.NewWriter(w)
	for _, root := range doc.Roots {
		if root == nil {
			continue
		}
		writeTagFlat(bw, root)
	}
	return bw.Flush()
}

func writeTagNested(bw *bufio.Writer, tag *topaz.Tag) {
	name := tag.ShortName()
	depth := strings.Count(tag.Name, ".")
	indent := strings.Repeat(" ", 3*depth)

	bw.WriteString(indent)
	bw.WriteByte('<')
	bw.WriteString(name)
	bw.WriteByte('>')

	if len(tag.Args) > 0 {
		joined := joinArgs(tag.Args, tag.Type, "|", ",")
		if tag.Type == topaz.ArgSnippets {
			bw.WriteString("snippets:")
		}
		bw.WriteString(joined)
	}

	if len(tag.Children) > 0 {
		bw.WriteByte('\n')
		for _, c := range tag.Children {
			if c == nil {
				continue
			}
			writeTagNested(bw, c)
		}
		bw.WriteString(indent)
		bw.WriteString("</")
		bw.WriteString(name)
		bw.WriteString(">\n")
	} else {
		bw.WriteString("</")
		bw.WriteString(name)
		bw.WriteString(">\n")
	}
}

func writeTagFlat(bw *bufio.Writer, tag *topaz.Tag) {
	bw.WriteString(tag.Name)

	if len(tag.Args) > 0 {
		sep := "|"
		args := joinArgs(tag.Args, tag.Type, sep, sep)
		if tag.Type == topaz.ArgSnippets {
			bw.WriteString(".snippets=")
		} else {
			bw.WriteByte('=')
		}
		bw.WriteString(args)
	}
	bw.WriteByte('\n')

	for _, c := range tag.Children {
		if c == nil {
			continue
		}
		writeTagFlat(bw, c)
	}
}

// joinArgs joins a tag's arguments with textSep when its type resolves
// through the dictionary and numberSep otherwise. Callers add any
// type-specific prefix ("snippets:", ".snippets=") themselves. It mirrors
// the original formatter's "join then drop the trailing separator"
// construction rather than strings.Join, since that is the shape the
// original took.
func joinArgs(args []topaz.Arg, argType topaz.ArgType, textSep, numberSep string) string {
	sep := numberSep
	if argType.ResolvesText() {
		sep = textSep
	}

	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.String())
		b.WriteString(sep)
	}
	return strings.TrimSuffix(b.String(), sep)
}
