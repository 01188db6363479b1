package topaz

import "testing"

func TestTagShortName(t *testing.T) {
	tag := &Tag{Name: "page.group.region.x"}
	if got := tag.ShortName(); got != "x" {
		t.Errorf("ShortName() = %q, want %q", got, "x")
	}
}

func TestTagShortNameNoDot(t *testing.T) {
	tag := &Tag{Name: "info"}
	if got := tag.ShortName(); got != "info" {
		t.Errorf("ShortName() = %q, want %q", got, "info")
	}
}

func TestTagCloneIsDeep(t *testing.T) {
	original := &Tag{
		Name: "page",
		Type: ArgSnippets,
		Args: []Arg{ArgNumber(1)},
		Children: []*Tag{
			{Name: "page.class", Type: ArgScalarText, Args: []Arg{ArgTextValue("body")}},
		},
	}

	clone := original.Clone()
	clone.Name = "changed"
	clone.Args[0] = ArgNumber(99)
	clone.Children[0].Name = "also changed"

	if original.Name != "page" {
		t.Errorf("original.Name mutated to %q", original.Name)
	}
	if original.Args[0].(ArgNumber) != 1 {
		t.Errorf("original.Args mutated to %v", original.Args)
	}
	if original.Children[0].Name != "page.class" {
		t.Errorf("original.Children[0].Name mutated to %q", original.Children[0].Name)
	}
}

func TestTagCloneNil(t *testing.T) {
	var tag *Tag
	if got := tag.Clone(); got != nil {
		t.Errorf("Clone() of nil = %+v, want nil", got)
	}
}

// Invariant 5 — name-prefixing under injection (spec.md §8.1.5): prefixing
// a subtree applies to the root and every descendant.
func TestWithPrefixedNamePrefixesWholeSubtree(t *testing.T) {
	root := &Tag{
		Name: "leaf",
		Children: []*Tag{
			{Name: "leaf.inner"},
		},
	}

	prefixed := root.WithPrefixedName("root")
	if prefixed.Name != "root.leaf" {
		t.Errorf("prefixed.Name = %q, want %q", prefixed.Name, "root.leaf")
	}
	if prefixed.Children[0].Name != "root.leaf.inner" {
		t.Errorf("prefixed child name = %q, want %q", prefixed.Children[0].Name, "root.leaf.inner")
	}
	if root.Name != "leaf" {
		t.Errorf("WithPrefixedName mutated the receiver's Name to %q", root.Name)
	}
}

func TestDocumentIsEmpty(t *testing.T) {
	var doc *Document
	if !doc.IsEmpty() {
		t.Error("nil Document should be empty")
	}
	doc = &Document{}
	if !doc.IsEmpty() {
		t.Error("Document with no roots should be empty")
	}
	doc.Roots = append(doc.Roots, &Tag{Name: "x"})
	if doc.IsEmpty() {
		t.Error("Document with a root should not be empty")
	}
}
