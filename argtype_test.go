package topaz

import "testing"

func TestArgTypeStringKnownValues(t *testing.T) {
	cases := map[ArgType]string{
		ArgScalarNumber: "scalar_number",
		ArgScalarText:   "scalar_text",
		ArgNumberType:   "number",
		ArgTextType:     "text",
		ArgRaw:          "raw",
		ArgSnippets:     "snippets",
	}
	for at, want := range cases {
		if got := at.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", at, got, want)
		}
	}
}

func TestArgTypeStringInvalid(t *testing.T) {
	if got := ArgInvalid.String(); got != "Invalid" {
		t.Errorf("ArgInvalid.String() = %q, want %q", got, "Invalid")
	}
	var unknown ArgType = 200
	if got := unknown.String(); got != "Invalid" {
		t.Errorf("unknown ArgType.String() = %q, want %q", got, "Invalid")
	}
}

func TestArgTypeFromStringRoundTrip(t *testing.T) {
	for _, at := range []ArgType{ArgScalarNumber, ArgScalarText, ArgNumberType, ArgTextType, ArgRaw, ArgSnippets} {
		got, ok := ArgTypeFromString(at.String())
		if !ok {
			t.Fatalf("ArgTypeFromString(%q) ok=false", at.String())
		}
		if got != at {
			t.Errorf("ArgTypeFromString(%q) = %v, want %v", at.String(), got, at)
		}
	}
}

func TestArgTypeFromStringCaseInsensitive(t *testing.T) {
	got, ok := ArgTypeFromString("SCALAR_TEXT")
	if !ok || got != ArgScalarText {
		t.Errorf("ArgTypeFromString(upper) = (%v, %v), want (ArgScalarText, true)", got, ok)
	}
}

func TestArgTypeFromStringUnknown(t *testing.T) {
	_, ok := ArgTypeFromString("not_a_type")
	if ok {
		t.Error("ArgTypeFromString(unknown) ok=true, want false")
	}
}

func TestArgTypeResolvesText(t *testing.T) {
	for _, at := range []ArgType{ArgTextType, ArgScalarText} {
		if !at.ResolvesText() {
			t.Errorf("%v.ResolvesText() = false, want true", at)
		}
	}
	for _, at := range []ArgType{ArgNumberType, ArgScalarNumber, ArgRaw, ArgSnippets, ArgInvalid} {
		if at.ResolvesText() {
			t.Errorf("%v.ResolvesText() = true, want false", at)
		}
	}
}

func TestArgTypeIsScalar(t *testing.T) {
	for _, at := range []ArgType{ArgScalarNumber, ArgScalarText} {
		if !at.IsScalar() {
			t.Errorf("%v.IsScalar() = false, want true", at)
		}
	}
	for _, at := range []ArgType{ArgNumberType, ArgTextType, ArgRaw, ArgSnippets, ArgInvalid} {
		if at.IsScalar() {
			t.Errorf("%v.IsScalar() = true, want false", at)
		}
	}
}
