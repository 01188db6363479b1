package topaz

import (
	"io"

	"github.com/tpzdecode/topaz/dict"
	"github.com/tpzdecode/topaz/format"
	"github.com/tpzdecode/topaz/page"
)

// DecodeOptions configures FromData and GetXML.
type DecodeOptions struct {
	// Debug enables the Page Parser's debug tracing (spec.md §4.3 [ADD]).
	Debug bool
}

// FromData decodes pageData against dictionary and renders it as flat XML
// text: one line per tag, each spelling out its full dotted path. It is the
// Go form of the original from_data entry point.
func FromData(dictionary *dict.Dictionary, pageData io.Reader, opts DecodeOptions) (string, error) {
	doc, err := decode(dictionary, pageData, opts)
	if err != nil {
		return "", err
	}
	return format.Flat(doc)
}

// GetXML decodes pageData against dictionary and renders it as nested,
// indented XML-like text. It is the Go form of the original get_xml entry
// point.
func GetXML(dictionary *dict.Dictionary, pageData io.Reader, opts DecodeOptions) (string, error) {
	doc, err := decode(dictionary, pageData, opts)
	if err != nil {
		return "", err
	}
	return format.Nested(doc)
}

func decode(dictionary *dict.Dictionary, pageData io.Reader, opts DecodeOptions) (*Document, error) {
	doc, _, err := page.Parse(pageData, dictionary, page.Options{Debug: opts.Debug})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
