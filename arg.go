package topaz

import "strconv"

// Arg holds a single formatted argument value produced by formatArg. It is
// one of ArgNumber, ArgTextValue, or the transient unresolved snippet index
// carried by a Tag whose ArgType is ArgSnippets before injection runs.
type Arg interface {
	// ArgType returns an identifier indicating the underlying kind.
	ArgType() ArgType

	// String returns the textual representation used by the formatters.
	String() string

	// Copy returns a copy of the value, safe to attach to a different Tag.
	Copy() Arg
}

// ArgNumber holds a raw numeric argument (arg types number, scalar_number,
// raw, or an unresolved snippets index).
type ArgNumber int64

func (ArgNumber) ArgType() ArgType { return ArgNumberType }

func (n ArgNumber) String() string { return strconv.FormatInt(int64(n), 10) }

func (n ArgNumber) Copy() Arg { return n }

// ArgTextValue holds an argument already resolved through the Dictionary
// (arg types text or scalar_text).
type ArgTextValue string

func (ArgTextValue) ArgType() ArgType { return ArgTextType }

func (t ArgTextValue) String() string { return string(t) }

func (t ArgTextValue) Copy() Arg { return t }

// FormatArg interprets a raw decoded integer according to argType, resolving
// it through lookup (ordinarily a Dictionary.Lookup) when the type calls for
// text. It implements formatArg from spec.md §4.3.4 and is the shared
// primitive topaz/page calls once per decoded argument value.
func FormatArg(value int64, argType ArgType, lookup func(int64) (string, error)) (Arg, error) {
	switch argType {
	case ArgTextType, ArgScalarText:
		s, err := lookup(value)
		if err != nil {
			return nil, err
		}
		return ArgTextValue(s), nil
	case ArgNumberType, ArgScalarNumber, ArgRaw, ArgSnippets:
		return ArgNumber(value), nil
	default:
		return nil, &ErrUnknownArgType{ArgType: argType}
	}
}
