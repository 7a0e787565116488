package encode

import (
	"testing"

	"github.com/lattice-json/corejson/value"
)

func encodeStr(t *testing.T, s string, mode EscapeMode) string {
	t.Helper()
	opts := DefaultOptions()
	opts.Escape = mode
	return mustEncode(t, value.NewStr(s), opts)
}

func TestEncodeStringMandatoryEscapes(t *testing.T) {
	got := encodeStr(t, "a\"b\\c\nd\te", EscapeJSON)
	want := "\"a\\\"b\\\\c\\nd\\te\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringControlCharacter(t *testing.T) {
	got := encodeStr(t, "a\x01b", EscapeJSON)
	want := "\"a\\u0001b\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringSolidusNotEscaped(t *testing.T) {
	got := encodeStr(t, "a/b", EscapeJSON)
	if got != "\"a/b\"" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeStringJSONModeLeavesNonASCIIRaw(t *testing.T) {
	input := "caf" + string(rune(0x00e9))
	got := encodeStr(t, input, EscapeJSON)
	want := "\"" + input + "\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringHTMLSafeEscapesAngleBracketsAndAmp(t *testing.T) {
	got := encodeStr(t, "<a>&</a>", EscapeHTMLSafe)
	want := "\"\\u003ca\\u003e\\u0026\\u003c/a\\u003e\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringHTMLAndJSSafeEscapeLineSeparators(t *testing.T) {
	input := "a" + string(rune(0x2028)) + "b" + string(rune(0x2029)) + "c"
	want := "\"a\\u2028b\\u2029c\""
	for _, mode := range []EscapeMode{EscapeHTMLSafe, EscapeJSSafe} {
		got := encodeStr(t, input, mode)
		if got != want {
			t.Fatalf("mode %v: got %q, want %q", mode, got, want)
		}
	}
}

func TestEncodeStringJSONModeLeavesLineSeparatorsRaw(t *testing.T) {
	input := string(rune(0x2028))
	got := encodeStr(t, input, EscapeJSON)
	want := "\"" + input + "\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringUnicodeSafeEscapesAllNonASCII(t *testing.T) {
	input := "caf" + string(rune(0x00e9))
	got := encodeStr(t, input, EscapeUnicodeSafe)
	want := "\"caf\\u00e9\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringUnicodeSafeSurrogatePair(t *testing.T) {
	got := encodeStr(t, string(rune(0x1F600)), EscapeUnicodeSafe)
	want := "\"\\ud83d\\ude00\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
