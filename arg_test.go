package topaz

import (
	"errors"
	"testing"
)

func lookupStub(vals map[int64]string) func(int64) (string, error) {
	return func(i int64) (string, error) {
		s, ok := vals[i]
		if !ok {
			return "", &ErrOutOfRangeIndex{Index: i, Size: len(vals)}
		}
		return s, nil
	}
}

func TestFormatArgText(t *testing.T) {
	lookup := lookupStub(map[int64]string{7: "body"})
	arg, err := FormatArg(7, ArgScalarText, lookup)
	if err != nil {
		t.Fatalf("FormatArg: %v", err)
	}
	tv, ok := arg.(ArgTextValue)
	if !ok || tv.String() != "body" {
		t.Errorf("FormatArg(text) = %#v, want ArgTextValue(\"body\")", arg)
	}
}

func TestFormatArgNumberFamily(t *testing.T) {
	for _, at := range []ArgType{ArgNumberType, ArgScalarNumber, ArgRaw, ArgSnippets} {
		arg, err := FormatArg(42, at, lookupStub(nil))
		if err != nil {
			t.Fatalf("FormatArg(%v): %v", at, err)
		}
		n, ok := arg.(ArgNumber)
		if !ok || int64(n) != 42 {
			t.Errorf("FormatArg(%v) = %#v, want ArgNumber(42)", at, arg)
		}
	}
}

func TestFormatArgUnknownType(t *testing.T) {
	_, err := FormatArg(1, ArgInvalid, lookupStub(nil))
	var unk *ErrUnknownArgType
	if err == nil {
		t.Fatal("FormatArg(ArgInvalid) returned nil error")
	}
	if !errors.As(err, &unk) {
		t.Fatalf("error is %T, want *ErrUnknownArgType", err)
	}
}

func TestFormatArgPropagatesLookupError(t *testing.T) {
	_, err := FormatArg(99, ArgTextType, lookupStub(map[int64]string{}))
	if err == nil {
		t.Fatal("FormatArg should propagate the lookup error")
	}
}

func TestArgCopyIsIndependent(t *testing.T) {
	n := ArgNumber(5)
	cp := n.Copy()
	if cp.String() != "5" {
		t.Errorf("Copy().String() = %q, want %q", cp.String(), "5")
	}

	tv := ArgTextValue("hi")
	tcp := tv.Copy()
	if tcp.String() != "hi" {
		t.Errorf("Copy().String() = %q, want %q", tcp.String(), "hi")
	}
}
