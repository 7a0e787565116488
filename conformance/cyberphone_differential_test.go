package conformance_test

import (
	"testing"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/lattice-json/corejson/decode"
	"github.com/lattice-json/corejson/encode"
)

// jcsEquivalentOptions configures the encoder so its output matches RFC 8785
// (JCS) for inputs whose object keys sort identically under byte-order and
// UTF-16-code-unit order: no indentation, mandatory-only escaping, and
// lexicographic key sorting.
func jcsEquivalentOptions() encode.Options {
	return encode.Options{
		Escape:   encode.EscapeJSON,
		Maps:     encode.MapsNaive,
		SortKeys: true,
	}
}

// TestCyberphoneDifferentialASCIIKeys diffs the encoder's sorted, minified
// output against the upstream Cyberphone Go canonicalizer for inputs whose
// object keys are plain ASCII. Byte-order and UTF-16-code-unit order agree
// on ASCII keys, so the two outputs should be byte-identical here even
// though the encoder's general sort rule diverges from JCS on astral-plane
// keys (see TestCyberphoneDifferentialAstralKeyDiverges).
func TestCyberphoneDifferentialASCIIKeys(t *testing.T) {
	cases := []string{
		`{"b":1,"a":2}`,
		`{"numbers":[3,1,2],"name":"test"}`,
		`{"z":{"y":{"x":1}},"a":0}`,
		`{}`,
		`[1,2,3]`,
		`{"flag":true,"nil":null,"nested":{"k":"v"}}`,
		`{"escaped":"line1\nline2\ttab"}`,
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			v, err := decode.Decode([]byte(input), decode.DefaultOptions())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			got, err := encode.Encode(v, jcsEquivalentOptions())
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			want, err := cyberphone.Transform([]byte(input))
			if err != nil {
				t.Fatalf("cyberphone transform: %v", err)
			}

			if string(got) != string(want) {
				t.Fatalf("output mismatch\n got=%q\nwant=%q", got, want)
			}
		})
	}
}

// TestCyberphoneDifferentialAstralKeyDiverges documents the one intentional
// divergence from RFC 8785: this encoder sorts object keys by plain byte
// order, while JCS sorts by UTF-16 code unit value. The two orders disagree
// between an astral-plane key (encoded as a UTF-16 surrogate pair whose
// leading unit is in the D800-DBFF range) and a BMP private-use-area key
// above U+E000: D800 < E000 in UTF-16 order, but the astral key's leading
// UTF-8 byte (0xF0) is greater than the BMP key's (0xEF) in byte order.
func TestCyberphoneDifferentialAstralKeyDiverges(t *testing.T) {
	astralKey := string(rune(0x1F600))  // surrogate pair D83D DE00 in UTF-16
	bmpKey := string(rune(0xF8FF))      // single unit F8FF in UTF-16, leading byte 0xEF in UTF-8
	input := `{"` + astralKey + `":"astral","` + bmpKey + `":"bmp"}`

	v, err := decode.Decode([]byte(input), decode.DefaultOptions())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := encode.Encode(v, jcsEquivalentOptions())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want, err := cyberphone.Transform([]byte(input))
	if err != nil {
		t.Fatalf("cyberphone transform: %v", err)
	}

	if string(got) == string(want) {
		t.Fatalf("expected byte-order and UTF-16-order sorts to disagree on %q, both produced %q", input, got)
	}
}

// TestCyberphoneDifferentialRejectsAreEncoderAgnostic confirms inputs the
// decoder rejects never reach the encoder at all, regardless of how lenient
// the upstream canonicalizer is about the same bytes.
func TestCyberphoneDifferentialRejectsAreEncoderAgnostic(t *testing.T) {
	cases := []string{
		`{"n":01}`,
		`{"n":+1}`,
		`{"s":"` + "\x01" + `"}`,
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			if _, err := decode.Decode([]byte(input), decode.DefaultOptions()); err == nil {
				t.Fatalf("expected decode to reject %q", input)
			}
		})
	}
}
