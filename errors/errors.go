// Package errors accumulates the non-fatal conditions a page decode runs
// into (an unknown token, an unknown vector opcode) so they can be
// reported as warnings instead of aborting the decode.
package errors

import "strings"

// Errors is a list of accumulated non-fatal errors.
type Errors []error

// Error formats the list. An empty list reads "no errors" and a single error
// is returned as its own message. Otherwise a "multiple errors:" header is
// followed by each message on a new line; every line after the header,
// including lines within messages, is prefixed with a tab.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	default:
		var buf strings.Builder
		buf.WriteString("multiple errors:")
		for _, err := range errs {
			buf.WriteString("\n\t")
			msg := err.Error()
			msg = strings.ReplaceAll(msg, "\n", "\n\t")
			buf.WriteString(msg)
		}
		return buf.String()
	}
}

// Append returns errs with each err appended to it. Arguments that are nil
// are skipped, so a parser can call Append unconditionally after an
// operation that may or may not have produced a warning.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Strings renders each error's message as a separate string, in order. The
// decode CLI's debug output prints one line per accumulated warning rather
// than Error's single newline-joined message.
func (errs Errors) Strings() []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
