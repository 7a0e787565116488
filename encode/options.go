package encode

// EscapeMode selects which characters beyond the mandatory JSON control set
// get escaped in string output.
type EscapeMode int

const (
	// EscapeJSON escapes exactly what RFC 8259 requires: '"', '\\', and
	// control characters U+0000..U+001F.
	EscapeJSON EscapeMode = iota
	// EscapeHTMLSafe additionally escapes '<', '>', '&', U+2028, and
	// U+2029, so the output can be embedded in an HTML <script> element.
	EscapeHTMLSafe
	// EscapeJSSafe additionally escapes U+2028 and U+2029 only, so the
	// output is safe to embed directly as a JavaScript string literal
	// (those two are line terminators in JS but not in JSON).
	EscapeJSSafe
	// EscapeUnicodeSafe additionally escapes every non-ASCII rune as a
	// \uXXXX sequence (surrogate pairs for astral code points), producing
	// pure-ASCII output.
	EscapeUnicodeSafe
)

// MapsMode selects how the encoder handles a Value tree that is not
// internally consistent with a faithful round trip.
type MapsMode int

const (
	// MapsNaive serializes members in the order Value stores them, with
	// no duplicate-key check.
	MapsNaive MapsMode = iota
	// MapsStrict fails with kind duplicate-key if encoding would produce
	// two members with the same serialized key in one object.
	MapsStrict
)

// Pretty configures indentation. The zero value (Pretty{}) produces
// minified output: no added whitespace at all.
type Pretty struct {
	Enabled       bool
	Indent        string // e.g. "  " or "\t"; repeated once per nesting level
	LineSeparator string // defaults to "\n" when Enabled and unset
	AfterColon    string // defaults to " " when Enabled and unset
}

// Options configures a single encode invocation.
type Options struct {
	Escape   EscapeMode
	Pretty   Pretty
	Maps     MapsMode
	SortKeys bool

	// FragmentConfig is passed verbatim to any deferred Fragment producer
	// encountered during this encode call.
	FragmentConfig any
}

// DefaultOptions returns the documented default configuration:
// RFC 8259 escaping, minified output, naive maps, and no key sorting.
func DefaultOptions() Options {
	return Options{
		Escape: EscapeJSON,
		Maps:   MapsNaive,
	}
}

func (p Pretty) lineSeparator() string {
	if p.LineSeparator != "" {
		return p.LineSeparator
	}
	return "\n"
}

func (p Pretty) afterColon() string {
	if p.AfterColon != "" {
		return p.AfterColon
	}
	return " "
}
