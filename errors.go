package topaz

import (
	"errors"
	"fmt"
)

// ErrTruncatedStream indicates EOF was reached while a VarInt or argument
// value was required. It is always fatal (spec.md §7).
var ErrTruncatedStream = errors.New("topaz: truncated stream")

// ErrOutOfRangeIndex indicates a dictionary index outside [0, Size) was
// encountered. Always fatal.
type ErrOutOfRangeIndex struct {
	Index int64
	Size  int
}

func (e *ErrOutOfRangeIndex) Error() string {
	return fmt.Sprintf("topaz: dictionary index %d outside of string table limits [0, %d)", e.Index, e.Size)
}

// ErrUnknownArgType indicates a SchemaEntry names an ArgType the formatter
// does not recognize. This signals schema corruption and is always fatal.
type ErrUnknownArgType struct {
	ArgType ArgType
}

func (e *ErrUnknownArgType) Error() string {
	return fmt.Sprintf("topaz: unknown argument type %q", e.ArgType.String())
}

// UnknownTokenError records a tag token with no schema entry. It is
// non-fatal: the caller elides the (empty) Tag it produces, but the error is
// still reported to whatever diagnostic sink is listening (spec.md §7).
type UnknownTokenError struct {
	Token   string
	TagPath string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("topaz: unknown token %q (at %q)", e.Token, e.TagPath)
}

// UnknownOpcodeError records a vector opcode byte decodeCMD does not
// recognize. Non-fatal: an empty argument vector is produced instead.
type UnknownOpcodeError struct {
	Opcode int64
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("topaz: unknown vector opcode 0x%X", e.Opcode)
}
