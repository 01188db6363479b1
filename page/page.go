// Package page implements the Page Parser: the stateful walk over a single
// page/glyph/stylesheet stream that turns VarInt-encoded tokens into a Tag
// tree, guided by the static schema table and a loaded string Dictionary.
package page

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tpzdecode/topaz"
	"github.com/tpzdecode/topaz/dict"
	"github.com/tpzdecode/topaz/errors"
	"github.com/tpzdecode/topaz/schema"
	"github.com/tpzdecode/topaz/varint"
)

// Stats summarizes a single decode, for diagnostics and the CLI's -d output.
// It never affects the decoded Document; it is purely descriptive.
type Stats struct {
	// TagCounts counts successfully resolved tags by their full dotted path.
	TagCounts map[string]int
	// SnippetCount is the number of snippet subtrees read via a 0x72 table.
	SnippetCount int
	// UnknownTokens counts tokens with no schema entry.
	UnknownTokens int
	// UnknownOpcodes counts vector opcodes decodeCMD did not recognize.
	UnknownOpcodes int
	// Warnings lists every non-fatal condition encountered, in order.
	Warnings errors.Errors
}

func newStats() Stats {
	return Stats{TagCounts: make(map[string]int)}
}

// Options configures a Parse call.
type Options struct {
	// Debug turns on tracing through the parser's logger; never on by
	// default, since the stream is parsed token by token and would be noisy.
	Debug bool
	// Logger receives debug traces and warnings when Debug is set. If nil,
	// Parse logs to stderr when Debug is set and discards all output
	// otherwise.
	Logger *log.Logger
}

// Parser walks a single page stream and builds its Document.
type Parser struct {
	dict *dict.Dictionary
	r    *bufio.Reader
	log  *log.Logger

	path     topaz.TagPath
	snippets []topaz.Snippet
	stats    Stats
	warnings errors.Errors
}

// Parse decodes src against dictionary, returning the resulting Document and
// decode Stats. Parse errors are always fatal stream errors (spec.md §7);
// recoverable conditions like unknown tokens are recorded in Stats and the
// parser's warning list, not returned as errors.
func Parse(src io.Reader, d *dict.Dictionary, opts Options) (*topaz.Document, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Debug && opts.Logger == nil {
		logger = log.Default()
	}
	logger.SetLevel(log.InfoLevel)
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	p := &Parser{
		dict:  d,
		log:   logger,
		stats: newStats(),
	}

	firstToken, r, err := classifyMagic(src)
	if err != nil {
		return nil, p.stats, err
	}
	p.r = bufio.NewReader(r)

	doc := &topaz.Document{}

	for {
		if firstToken != "" {
			tag, err := p.procToken(firstToken)
			if err != nil {
				return nil, p.stats, err
			}
			if tag != nil {
				doc.Roots = append(doc.Roots, tag)
			}
			firstToken = ""
		}

		v, ok := varint.Decode(p.r)
		if !ok {
			break
		}

		switch {
		case v == 0x72:
			if err := p.doLoop72(); err != nil {
				return nil, p.stats, err
			}
		case v > 0 && v < int64(p.dict.Size()):
			name, err := p.dict.Lookup(v)
			if err != nil {
				p.warn(err)
				continue
			}
			tag, err := p.procToken(name)
			if err != nil {
				return nil, p.stats, err
			}
			if tag != nil {
				doc.Roots = append(doc.Roots, tag)
			}
		default:
			p.log.Debug("main loop: unrecognized value", "value", v)
			if v == 0 {
				if b, ok := varint.PeekByte(p.r); ok && b == 0x5f {
					p.r.ReadByte()
					firstToken = "info"
				}
			}
		}
	}

	if len(p.snippets) > 0 {
		injected := p.injectSnippets(0)
		if injected != nil {
			doc.Roots = append(doc.Roots, injected)
		}
	}
	doc.Snippets = p.snippets
	p.stats.Warnings = p.warnings

	return doc, p.stats, nil
}

func (p *Parser) warn(err error) {
	p.warnings = p.warnings.Append(err)
	p.log.Debug(err.Error())
}

// classifyMagic implements spec.md §4.3.8's 9-byte stream-prefix sniff: page
// and glyph streams begin with a fixed magic prefix and get an implied
// leading "info" token; everything else is a plain stream with no implied
// token, and the 9 bytes sniffed must be fed back as ordinary stream
// content since they were never part of a magic header.
func classifyMagic(src io.Reader) (firstToken string, rest io.Reader, err error) {
	magic := make([]byte, 9)
	n, err := io.ReadFull(src, magic)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			// Stream shorter than any magic prefix: replay the bytes read
			// as a plain stream rather than report a truncation error.
			return "", io.MultiReader(bytesReader(magic[:n]), src), nil
		}
		return "", nil, fmt.Errorf("page: reading stream prefix: %w", err)
	}

	switch {
	case magic[0] == 'p' && string(magic[2:9]) == "marker_":
		return "info", src, nil
	case magic[0] == 'p' && string(magic[2:9]) == "__PAGE_":
		skip := make([]byte, 2)
		if _, err := io.ReadFull(src, skip); err != nil {
			return "", nil, fmt.Errorf("page: reading __PAGE_ header: %w", err)
		}
		return "info", src, nil
	case magic[0] == 'p' && string(magic[2:8]) == "_PAGE_":
		return "info", src, nil
	case magic[0] == 'g' && string(magic[2:9]) == "__GLYPH":
		skip := make([]byte, 3)
		if _, err := io.ReadFull(src, skip); err != nil {
			return "", nil, fmt.Errorf("page: reading __GLYPH header: %w", err)
		}
		return "info", src, nil
	default:
		return "", io.MultiReader(bytesReader(magic), src), nil
	}
}

func bytesReader(b []byte) io.Reader { return &byteSliceReader{b: b} }

type byteSliceReader struct {
	b []byte
	i int
}

func (r *byteSliceReader) Read(p []byte) (int, error) {
	if r.i >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.i:])
	r.i += n
	return n, nil
}

// procToken processes one tag token, recursively reading its subtags and
// arguments (spec.md §4.3.2-§4.3.6). It returns (nil, nil) for a token with
// no schema entry: that condition is recorded in Stats/warnings, never
// treated as fatal.
func (p *Parser) procToken(token string) (*topaz.Tag, error) {
	p.path.Push(token)
	defer p.path.Pop()

	p.log.Debug("processing", "path", p.path.Full())

	entry, ok := schema.Resolve(p.path.Tokens())
	if !ok {
		p.warn(&topaz.UnknownTokenError{Token: token, TagPath: p.path.Full()})
		p.stats.UnknownTokens++
		return nil, nil
	}

	numArgs := entry.NumArgs
	hasSubtags := entry.HasSubtags
	argType := entry.ArgType

	if entry.EscapedSubtags {
		if b, ok := varint.PeekByte(p.r); ok && b == 0x74 {
			if _, ok := varint.Decode(p.r); !ok {
				return nil, topaz.ErrTruncatedStream
			}
			hasSubtags = true
			numArgs = 0
		}
	}

	var children []*topaz.Tag
	if hasSubtags {
		ntags, ok := varint.Decode(p.r)
		if !ok {
			return nil, topaz.ErrTruncatedStream
		}
		p.log.Debug("subtags", "token", token, "count", ntags)
		for i := int64(0); i < ntags; i++ {
			val, ok := varint.Decode(p.r)
			if !ok {
				return nil, topaz.ErrTruncatedStream
			}
			name, err := p.dict.Lookup(val)
			if err != nil {
				return nil, err
			}
			child, err := p.procToken(name)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		}
	}

	var args []topaz.Arg
	if numArgs > 0 {
		firstByte, havePeek := varint.PeekByte(p.r)
		if havePeek && firstByte == 0x76 && argType != topaz.ArgScalarNumber && argType != topaz.ArgScalarText {
			cmd, ok := varint.Decode(p.r)
			if !ok {
				return nil, topaz.ErrTruncatedStream
			}
			var err error
			args, err = p.decodeCMD(cmd, argType)
			if err != nil {
				return nil, err
			}
		} else {
			for i := 0; i < numArgs; i++ {
				raw, ok := varint.Decode(p.r)
				if !ok {
					return nil, topaz.ErrTruncatedStream
				}
				arg, err := topaz.FormatArg(raw, argType, p.dict.Lookup)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
	}

	tag := &topaz.Tag{
		Name:     p.path.Full(),
		Children: children,
		Type:     argType,
		Args:     args,
	}
	p.stats.TagCounts[tag.Name]++
	return tag, nil
}

// doLoop72 reads a snippet table: a count followed by that many independent
// tag subtrees, appended to the parser's snippet list in order (spec.md
// §4.3.6). It is never used to format arguments in place. A truncated table,
// an out-of-range token index, or a fatal error from procToken is returned.
func (p *Parser) doLoop72() error {
	cnt, ok := varint.Decode(p.r)
	if !ok {
		return fmt.Errorf("page: %w: reading snippet count", topaz.ErrTruncatedStream)
	}
	p.log.Debug("snippet table", "count", cnt)

	for i := int64(0); i < cnt; i++ {
		p.log.Debug("snippet", "index", i)
		val, ok := varint.Decode(p.r)
		if !ok {
			return fmt.Errorf("page: %w: reading snippet %d token", topaz.ErrTruncatedStream, i)
		}
		name, err := p.dict.Lookup(val)
		if err != nil {
			return err
		}
		root, err := p.procToken(name)
		if err != nil {
			return err
		}
		p.snippets = append(p.snippets, topaz.Snippet{Index: int(i), Root: root})
		p.stats.SnippetCount++
	}
	return nil
}

// decodeCMD dispatches a vector opcode read as the sole argument of a tag
// (spec.md §4.3.5). 0x76 is the only recognized opcode; anything else
// produces an empty argument vector plus a recorded warning.
func (p *Parser) decodeCMD(cmd int64, argType topaz.ArgType) ([]topaz.Arg, error) {
	if cmd == 0x76 {
		cnt, ok := varint.Decode(p.r)
		if !ok {
			return nil, topaz.ErrTruncatedStream
		}
		mode, ok := varint.Decode(p.r)
		if !ok {
			return nil, topaz.ErrTruncatedStream
		}
		p.log.Debug("vector loop", "count", cnt, "mode", mode)
		return p.doLoop76Mode(argType, cnt, mode)
	}
	p.stats.UnknownOpcodes++
	p.warn(&topaz.UnknownOpcodeError{Opcode: cmd})
	return nil, nil
}

// doLoop76Mode reconstructs a vector of cnt values from a stream of deltas,
// applying an optional uniform offset (adj, when mode's low bit is set) and
// then mode>>1 passes of running prefix-sum reconstruction (spec.md §4.3.5,
// contributed upstream by "skindle").
func (p *Parser) doLoop76Mode(argType topaz.ArgType, cnt, mode int64) ([]topaz.Arg, error) {
	var adj int64
	if mode&1 != 0 {
		v, ok := varint.Decode(p.r)
		if !ok {
			return nil, topaz.ErrTruncatedStream
		}
		adj = v
	}
	passes := mode >> 1

	x := make([]int64, cnt)
	for i := int64(0); i < cnt; i++ {
		v, ok := varint.Decode(p.r)
		if !ok {
			return nil, topaz.ErrTruncatedStream
		}
		x[i] = v - adj
	}
	for pass := int64(0); pass < passes; pass++ {
		for j := int64(1); j < cnt; j++ {
			x[j] += x[j-1]
		}
	}

	result := make([]topaz.Arg, cnt)
	for i, v := range x {
		arg, err := topaz.FormatArg(v, argType, p.dict.Lookup)
		if err != nil {
			return nil, err
		}
		result[i] = arg
	}
	return result, nil
}

// injectSnippets performs the depth-first splice described in spec.md
// §4.3.7: a tag whose ArgType is ArgSnippets holds, as its Args, the indices
// of other snippets to recursively inject and append as children (each
// renamed under this tag's own name), after which the tag becomes a plain
// structural node with no arguments.
func (p *Parser) injectSnippets(idx int) *topaz.Tag {
	if idx < 0 || idx >= len(p.snippets) {
		return nil
	}
	tag := p.snippets[idx].Root
	if tag == nil {
		return nil
	}

	children := append([]*topaz.Tag{}, tag.Children...)
	if tag.Type == topaz.ArgSnippets {
		for _, a := range tag.Args {
			n, ok := a.(topaz.ArgNumber)
			if !ok {
				continue
			}
			injected := p.injectSnippets(int(n))
			if injected == nil {
				continue
			}
			children = append(children, injected.WithPrefixedName(tag.Name))
		}
	}

	return &topaz.Tag{
		Name:     tag.Name,
		Children: children,
		Type:     topaz.ArgNumberType,
	}
}
