package topaz

import (
	"encoding/json"
	"testing"
)

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := &Document{
		Roots: []*Tag{
			{
				Name: "page",
				Type: ArgNumberType,
				Args: []Arg{ArgNumber(7)},
				Children: []*Tag{
					{Name: "page.class", Type: ArgScalarText, Args: []Arg{ArgTextValue("body")}},
				},
			},
		},
		Snippets: []Snippet{
			{Index: 0, Root: &Tag{Name: "snip", Type: ArgNumberType, Args: []Arg{ArgNumber(3)}}},
		},
	}

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Roots) != 1 {
		t.Fatalf("got.Roots has %d entries, want 1", len(got.Roots))
	}
	root := got.Roots[0]
	if root.Name != "page" || root.Type != ArgNumberType {
		t.Errorf("root = %+v, want Name=page Type=ArgNumberType", root)
	}
	if len(root.Args) != 1 || root.Args[0].(ArgNumber) != 7 {
		t.Errorf("root.Args = %v, want [ArgNumber(7)]", root.Args)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "page.class" {
		t.Fatalf("root.Children = %+v", root.Children)
	}
	if root.Children[0].Args[0].String() != "body" {
		t.Errorf("root.Children[0].Args = %v, want [\"body\"]", root.Children[0].Args)
	}

	if len(got.Snippets) != 1 || got.Snippets[0].Index != 0 {
		t.Fatalf("got.Snippets = %+v", got.Snippets)
	}
	if got.Snippets[0].Root.Name != "snip" {
		t.Errorf("snippet root = %+v, want Name=snip", got.Snippets[0].Root)
	}
}

func TestDocumentUnmarshalRejectsWrongVersion(t *testing.T) {
	var got Document
	err := json.Unmarshal([]byte(`{"topaz_version":99,"roots":[],"snippets":[]}`), &got)
	if err == nil {
		t.Error("Unmarshal with mismatched topaz_version should fail")
	}
}

func TestDocumentUnmarshalRejectsNonObject(t *testing.T) {
	var got Document
	err := json.Unmarshal([]byte(`42`), &got)
	if err == nil {
		t.Error("Unmarshal of a bare number should fail")
	}
}

func TestDocumentMarshalEmpty(t *testing.T) {
	doc := &Document{}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.IsEmpty() {
		t.Error("round-tripped empty Document should be empty")
	}
}
