package topaz

import (
	"encoding/json"
	"errors"
	"strconv"
)

// topazJSONVersion tags the shape of the debug JSON dump so a future change
// to it can be detected by readers instead of silently misparsed.
const topazJSONVersion = 0

func (d *Document) MarshalJSON() ([]byte, error) {
	idoc := make(map[string]interface{}, 3)
	idoc["topaz_version"] = float64(topazJSONVersion)
	roots := make([]interface{}, len(d.Roots))
	for i, root := range d.Roots {
		roots[i] = tagToJSONInterface(root)
	}
	idoc["roots"] = roots
	snippets := make([]interface{}, len(d.Snippets))
	for i, s := range d.Snippets {
		snippets[i] = map[string]interface{}{
			"index": float64(s.Index),
			"root":  tagToJSONInterface(s.Root),
		}
	}
	idoc["snippets"] = snippets
	return json.Marshal(idoc)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	doc, ok := documentFromJSONInterface(v)
	if !ok {
		return errors.New("topaz: invalid JSON document object")
	}
	*d = *doc
	return nil
}

func indexJSON(v, i interface{}, p interface{}) bool {
	var value interface{}
	switch object := v.(type) {
	case map[string]interface{}:
		index, ok := i.(string)
		if !ok {
			return false
		}
		value, ok = object[index]
		if !ok {
			return false
		}
	case []interface{}:
		index, ok := i.(int)
		if !ok || index < 0 || index >= len(object) {
			return false
		}
		value = object[index]
	default:
		return false
	}
	switch p := p.(type) {
	case *float64:
		f, ok := value.(float64)
		if !ok {
			return false
		}
		*p = f
	case *string:
		s, ok := value.(string)
		if !ok {
			return false
		}
		*p = s
	case *[]interface{}:
		a, ok := value.([]interface{})
		if !ok {
			return false
		}
		*p = a
	case *interface{}:
		*p = value
	}
	return true
}

func tagToJSONInterface(tag *Tag) interface{} {
	if tag == nil {
		return nil
	}
	itag := make(map[string]interface{}, 4)
	itag["name"] = tag.Name
	itag["type"] = tag.Type.String()
	args := make([]interface{}, len(tag.Args))
	for i, a := range tag.Args {
		// Numeric args serialize as decimal text too, to avoid JSON's
		// float64 precision loss on large snippet/vtx coordinates.
		args[i] = a.String()
	}
	itag["args"] = args
	children := make([]interface{}, len(tag.Children))
	for i, c := range tag.Children {
		children[i] = tagToJSONInterface(c)
	}
	itag["children"] = children
	return itag
}

func tagFromJSONInterface(itag interface{}) (*Tag, bool) {
	tag := new(Tag)
	if !indexJSON(itag, "name", &tag.Name) {
		return nil, false
	}
	var typeName string
	if !indexJSON(itag, "type", &typeName) {
		return nil, false
	}
	typ, ok := ArgTypeFromString(typeName)
	if !ok {
		return nil, false
	}
	tag.Type = typ

	var iargs []interface{}
	if indexJSON(itag, "args", &iargs) {
		tag.Args = make([]Arg, 0, len(iargs))
		for _, ia := range iargs {
			s, ok := ia.(string)
			if !ok {
				continue
			}
			tag.Args = append(tag.Args, argFromString(s, typ))
		}
	}

	var ichildren []interface{}
	if indexJSON(itag, "children", &ichildren) {
		tag.Children = make([]*Tag, 0, len(ichildren))
		for _, ic := range ichildren {
			child, ok := tagFromJSONInterface(ic)
			if !ok {
				continue
			}
			tag.Children = append(tag.Children, child)
		}
	}
	return tag, true
}

func argFromString(s string, typ ArgType) Arg {
	if typ.ResolvesText() {
		return ArgTextValue(s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ArgNumber(0)
	}
	return ArgNumber(n)
}

func documentFromJSONInterface(idoc interface{}) (*Document, bool) {
	var version float64
	if !indexJSON(idoc, "topaz_version", &version) {
		return nil, false
	}
	if int(version) != topazJSONVersion {
		return nil, false
	}

	doc := new(Document)
	var iroots []interface{}
	if indexJSON(idoc, "roots", &iroots) {
		doc.Roots = make([]*Tag, 0, len(iroots))
		for _, ir := range iroots {
			tag, ok := tagFromJSONInterface(ir)
			if !ok {
				continue
			}
			doc.Roots = append(doc.Roots, tag)
		}
	}

	var isnippets []interface{}
	if indexJSON(idoc, "snippets", &isnippets) {
		doc.Snippets = make([]Snippet, 0, len(isnippets))
		for _, is := range isnippets {
			var index float64
			if !indexJSON(is, "index", &index) {
				continue
			}
			var iroot interface{}
			if !indexJSON(is, "root", &iroot) {
				continue
			}
			root, ok := tagFromJSONInterface(iroot)
			if !ok {
				continue
			}
			doc.Snippets = append(doc.Snippets, Snippet{Index: int(index), Root: root})
		}
	}
	return doc, true
}
