// Package conformance_test exercises the decoder, encoder, and formatter
// against representative accept/reject vectors in the style of the
// JSONTestSuite y_*/n_*/i_* naming convention: y_ must decode, n_ must be
// rejected, i_ cases are implementation-defined and only asserted not to
// panic.
package conformance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lattice-json/corejson/decode"
	"github.com/lattice-json/corejson/format"
	"github.com/lattice-json/corejson/jsonerr"
	"github.com/lattice-json/corejson/value"
)

type vector struct {
	name  string
	input string
}

// y_ vectors: well-formed JSON that must decode without error.
var acceptVectors = []vector{
	{"y_array_empty", `[]`},
	{"y_array_heterogeneous", `[1, "two", 3.0, true, false, null, {}, []]`},
	{"y_object_empty", `{}`},
	{"y_object_simple", `{"a":1,"b":2}`},
	{"y_object_duplicate_keys", `{"a":1,"a":2}`},
	{"y_string_unicode_escape", "\"\\u00e9\""},
	{"y_string_surrogate_pair", "\"\\ud83d\\ude00\""},
	{"y_string_escapes", `"\"\\\/\b\f\n\r\t"`},
	{"y_number_negative_zero", `-0`},
	{"y_number_exponent", `1e10`},
	{"y_number_negative_exponent", `1.5e-10`},
	{"y_number_large_int", `123456789012345678901234567890`},
	{"y_string_empty", `""`},
	{"y_nested_arrays", `[[[[[1]]]]]`},
	{"y_whitespace_tolerance", "  \t\n [ 1 , 2 ] \n"},
	{"y_structure_trailing_newline", "[1]\n"},
	{"y_top_level_string", `"hello"`},
	{"y_top_level_number", `42`},
	{"y_top_level_true", `true`},
	{"y_top_level_false", `false`},
	{"y_top_level_null", `null`},
}

// n_ vectors: malformed JSON that must be rejected with a specific Kind.
var rejectVectors = []struct {
	vector
	kind jsonerr.Kind
}{
	{vector{"n_object_trailing_comma", `{"a":1,}`}, jsonerr.BadKeyType},
	{vector{"n_array_trailing_comma", `[1,]`}, jsonerr.UnexpectedChar},
	{vector{"n_object_unquoted_key", `{a:1}`}, jsonerr.BadKeyType},
	{vector{"n_number_leading_zero", `01`}, jsonerr.BadNumber},
	{vector{"n_number_plus_sign", `+1`}, jsonerr.UnexpectedChar},
	{vector{"n_number_hex", `0x1`}, jsonerr.TrailingData},
	{vector{"n_number_trailing_dot", `1.`}, jsonerr.BadNumber},
	{vector{"n_number_leading_dot", `.1`}, jsonerr.UnexpectedChar},
	{vector{"n_string_unterminated", `"abc`}, jsonerr.UnexpectedEOF},
	{vector{"n_string_unescaped_control", "\"a\tb\""}, jsonerr.UnescapedControl},
	{vector{"n_string_bad_escape", `"\x41"`}, jsonerr.BadEscape},
	{vector{"n_string_lone_high_surrogate", `"\ud800"`}, jsonerr.LoneSurrogate},
	{vector{"n_string_lone_low_surrogate", `"\udc00"`}, jsonerr.LoneSurrogate},
	{vector{"n_literal_unquoted", `undefined`}, jsonerr.UnexpectedChar},
	{vector{"n_structure_trailing_garbage", `{} extra`}, jsonerr.TrailingData},
	{vector{"n_structure_empty_input", ``}, jsonerr.UnexpectedEOF},
	{vector{"n_structure_unclosed_array", `[1,2`}, jsonerr.UnexpectedEOF},
	{vector{"n_structure_unclosed_object", `{"a":1`}, jsonerr.UnexpectedEOF},
	{vector{"n_structure_mismatched_close", `[1,2}`}, jsonerr.UnexpectedChar},
	{vector{"n_single_quote_string", `'abc'`}, jsonerr.UnexpectedChar},
}

// i_ vectors: inputs the grammar leaves to implementation discretion. These
// only assert that Decode terminates with either a value or a structured
// error, never a panic or an unstructured error.
var implementationVectors = []vector{
	{"i_number_huge_exponent", `1e400`},
	{"i_string_invalid_utf8_byte", "\"\xff\""},
	{"i_structure_500_nested_arrays", strings.Repeat("[", 500) + strings.Repeat("]", 500)},
	{"i_number_overflow_digits", strings.Repeat("9", 2000)},
}

func TestAcceptVectorsDecode(t *testing.T) {
	for _, v := range acceptVectors {
		t.Run(v.name, func(t *testing.T) {
			if _, err := decode.Decode([]byte(v.input), decode.DefaultOptions()); err != nil {
				t.Fatalf("expected %q to decode, got error: %v", v.input, err)
			}
		})
	}
}

func TestRejectVectorsDecode(t *testing.T) {
	for _, tc := range rejectVectors {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decode.Decode([]byte(tc.input), decode.DefaultOptions())
			if err == nil {
				t.Fatalf("expected %q to be rejected", tc.input)
			}
			var je *jsonerr.Error
			if !errors.As(err, &je) {
				t.Fatalf("expected *jsonerr.Error, got %T: %v", err, err)
			}
			if je.Kind != tc.kind {
				t.Fatalf("%s: got kind %q, want %q (message=%s)", tc.name, je.Kind, tc.kind, je.Message)
			}
		})
	}
}

func TestImplementationVectorsDoNotPanic(t *testing.T) {
	for _, v := range implementationVectors {
		t.Run(v.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("panicked on %q: %v", v.input, r)
				}
			}()
			val, err := decode.Decode([]byte(v.input), decode.DefaultOptions())
			if err != nil {
				var je *jsonerr.Error
				if !errors.As(err, &je) {
					t.Fatalf("expected structured error, got %T: %v", err, err)
				}
				return
			}
			if val.KindOf() == value.Null && v.input != "null" {
				t.Fatalf("unexpected null decode for %q", v.input)
			}
		})
	}
}

// TestAcceptVectorsRoundTripThroughFormat verifies that every accepted
// vector survives a decode -> pretty-encode -> decode round trip and a
// decode -> minify -> decode round trip without error.
func TestAcceptVectorsRoundTripThroughFormat(t *testing.T) {
	for _, v := range acceptVectors {
		t.Run(v.name, func(t *testing.T) {
			pretty, err := format.Pretty([]byte(v.input), decode.DefaultOptions(), format.Indent{})
			if err != nil {
				t.Fatalf("pretty: %v", err)
			}
			if _, err := decode.Decode(pretty, decode.DefaultOptions()); err != nil {
				t.Fatalf("re-decode of pretty output failed: %v (pretty=%q)", err, pretty)
			}
			minified, err := format.Minify([]byte(v.input), decode.DefaultOptions())
			if err != nil {
				t.Fatalf("minify: %v", err)
			}
			if _, err := decode.Decode(minified, decode.DefaultOptions()); err != nil {
				t.Fatalf("re-decode of minified output failed: %v (minified=%q)", err, minified)
			}
		})
	}
}

func TestRejectVectorsPropagateThroughFormat(t *testing.T) {
	for _, tc := range rejectVectors {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := format.Pretty([]byte(tc.input), decode.DefaultOptions(), format.Indent{}); err == nil {
				t.Fatalf("expected format.Pretty to reject %q", tc.input)
			}
		})
	}
}
