// Package format implements two convenience operations, Pretty and Minify,
// each exactly a decode followed by an encode with no independent parsing
// of its own.
package format

import (
	"github.com/lattice-json/corejson/decode"
	"github.com/lattice-json/corejson/encode"
)

// Indent configures Pretty's output indentation.
type Indent struct {
	// String is repeated once per nesting level. Defaults to two spaces
	// when empty.
	String string
}

// Pretty decodes input under decodeOpts and re-encodes it with indentation,
// sorted keys (objects decoded as OrderedObj keep their stored order), and
// RFC 8259 escaping. It returns the same error a Decode or
// Encode call would: a *jsonerr.Error identifying which stage failed.
func Pretty(input []byte, decodeOpts decode.Options, indent Indent) ([]byte, error) {
	v, err := decode.Decode(input, decodeOpts)
	if err != nil {
		return nil, err
	}
	indentStr := indent.String
	if indentStr == "" {
		indentStr = "  "
	}
	encodeOpts := encode.DefaultOptions()
	encodeOpts.SortKeys = true
	encodeOpts.Pretty = encode.Pretty{Enabled: true, Indent: indentStr}
	return encode.Encode(v, encodeOpts)
}

// Minify decodes input under decodeOpts and re-encodes it with no added
// whitespace, preserving the decoded object's key order.
func Minify(input []byte, decodeOpts decode.Options) ([]byte, error) {
	v, err := decode.Decode(input, decodeOpts)
	if err != nil {
		return nil, err
	}
	return encode.Encode(v, encode.DefaultOptions())
}
