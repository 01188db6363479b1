package topaz

import "strings"

// ArgType indicates how the argument values of a Tag are to be interpreted:
// as raw numbers, as dictionary-resolved text, or as pending snippet
// references. It corresponds to the arg_type field of a SchemaEntry.
type ArgType byte

const (
	// ArgInvalid marks an ArgType that has no defined meaning.
	ArgInvalid ArgType = iota
	// ArgScalarNumber is a single numeric argument, never vectorized.
	ArgScalarNumber
	// ArgScalarText is a single dictionary-resolved argument, never
	// vectorized.
	ArgScalarText
	// ArgNumberType is one or more raw numeric arguments.
	ArgNumberType
	// ArgTextType is one or more dictionary-resolved arguments.
	ArgTextType
	// ArgRaw is one or more numeric arguments left unresolved, distinct from
	// ArgNumberType only for schema-authoring clarity; formatted identically.
	ArgRaw
	// ArgSnippets is one or more numeric snippet-list indices, resolved by
	// the snippet injector rather than by formatArg.
	ArgSnippets
)

var argTypeStrings = map[ArgType]string{
	ArgScalarNumber: "scalar_number",
	ArgScalarText:   "scalar_text",
	ArgNumberType:   "number",
	ArgTextType:     "text",
	ArgRaw:          "raw",
	ArgSnippets:     "snippets",
}

// String returns the schema-table spelling of the type. "Invalid" is
// returned for a value with no defined meaning.
func (t ArgType) String() string {
	if s, ok := argTypeStrings[t]; ok {
		return s
	}
	return "Invalid"
}

// ArgTypeFromString returns the ArgType named by s, and whether s was
// recognized.
func ArgTypeFromString(s string) (ArgType, bool) {
	for typ, str := range argTypeStrings {
		if strings.EqualFold(s, str) {
			return typ, true
		}
	}
	return ArgInvalid, false
}

// ResolvesText reports whether arguments of this type are resolved through
// a Dictionary rather than kept as raw numbers.
func (t ArgType) ResolvesText() bool {
	return t == ArgTextType || t == ArgScalarText
}

// IsScalar reports whether the type admits only a single, non-vectorized
// argument (i.e. the 0x76 vector opcode never applies to it).
func (t ArgType) IsScalar() bool {
	return t == ArgScalarNumber || t == ArgScalarText
}
