package decode

import (
	"errors"
	"testing"

	"github.com/lattice-json/corejson/jsonerr"
)

func TestParseStringFastPathNoEscape(t *testing.T) {
	d := NewDecoder([]byte(`"hello"`), DefaultOptions())
	decoded, raw, fastPath, err := d.parseString()
	if err != nil {
		t.Fatal(err)
	}
	if !fastPath || string(raw) != "hello" || decoded != "hello" {
		t.Fatalf("got decoded=%q raw=%q fastPath=%v", decoded, raw, fastPath)
	}
}

func TestParseStringSimpleEscapes(t *testing.T) {
	d := NewDecoder([]byte(`"a\nb\tc\"d"`), DefaultOptions())
	decoded, _, fastPath, err := d.parseString()
	if err != nil {
		t.Fatal(err)
	}
	if fastPath {
		t.Fatal("expected non-fast-path with escapes present")
	}
	if decoded != "a\nb\tc\"d" {
		t.Fatalf("got %q", decoded)
	}
}

func TestParseStringUnicodeEscape(t *testing.T) {
	d := NewDecoder([]byte("\"\\u0041\\u00e9\""), DefaultOptions())
	decoded, _, _, err := d.parseString()
	if err != nil {
		t.Fatal(err)
	}
	if decoded != "Aé" {
		t.Fatalf("got %q", decoded)
	}
}

func TestParseStringSurrogatePair(t *testing.T) {
	d := NewDecoder([]byte("\"\\ud83d\\ude00\""), DefaultOptions())
	decoded, _, _, err := d.parseString()
	if err != nil {
		t.Fatal(err)
	}
	if decoded != "\U0001F600" {
		t.Fatalf("got %q, want grinning face emoji", decoded)
	}
}

func TestParseStringLoneHighSurrogateRejected(t *testing.T) {
	d := NewDecoder([]byte(`"\ud800"`), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.LoneSurrogate {
		t.Fatalf("got %v, want lone-surrogate", err)
	}
}

func TestParseStringLoneLowSurrogateRejected(t *testing.T) {
	d := NewDecoder([]byte(`"\udc00"`), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.LoneSurrogate {
		t.Fatalf("got %v, want lone-surrogate", err)
	}
}

func TestParseStringHighSurrogateFollowedByNonLowRejected(t *testing.T) {
	d := NewDecoder([]byte(`"\ud800A"`), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.LoneSurrogate {
		t.Fatalf("got %v, want lone-surrogate", err)
	}
}

func TestParseStringUnescapedControlRejected(t *testing.T) {
	d := NewDecoder([]byte("\"a\tb\""), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.UnescapedControl {
		t.Fatalf("got %v, want unescaped-control", err)
	}
}

func TestParseStringBadEscapeRejected(t *testing.T) {
	d := NewDecoder([]byte(`"\q"`), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.BadEscape {
		t.Fatalf("got %v, want bad-escape", err)
	}
}

func TestParseStringInvalidUTF8RejectedWhenValidating(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidateStrings = true
	d := NewDecoder([]byte{'"', 0xff, '"'}, opts)
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.InvalidUTF8 {
		t.Fatalf("got %v, want invalid-utf8", err)
	}
}

func TestParseStringInvalidUTF8AcceptedWhenNotValidating(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidateStrings = false
	d := NewDecoder([]byte{'"', 0xff, '"'}, opts)
	decoded, _, _, err := d.parseString()
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0] != 0xff {
		t.Fatalf("got %q", decoded)
	}
}

func TestParseStringUnterminated(t *testing.T) {
	d := NewDecoder([]byte(`"abc`), DefaultOptions())
	_, _, _, err := d.parseString()
	var je *jsonerr.Error
	if !errors.As(err, &je) || je.Kind != jsonerr.UnexpectedEOF {
		t.Fatalf("got %v, want unexpected-eof", err)
	}
}
