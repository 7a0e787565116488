// Package jsonerr defines the failure taxonomy shared by the decoder and the
// encoder. Every failure is terminal for the invocation that produced it:
// there is no partial recovery and no sub-parse fallback.
package jsonerr

import "fmt"

// Kind is a stable failure category.
type Kind string

const (
	UnexpectedChar   Kind = "unexpected-char"
	UnexpectedEOF    Kind = "unexpected-eof"
	TrailingData     Kind = "trailing-data"
	BadEscape        Kind = "bad-escape"
	LoneSurrogate    Kind = "lone-surrogate"
	UnescapedControl Kind = "unescaped-control"
	InvalidUTF8      Kind = "invalid-utf8"
	BadNumber        Kind = "bad-number"
	NumberOverflow   Kind = "number-overflow"
	DigitLimit       Kind = "digit-limit"
	DepthExceeded    Kind = "depth-exceeded"
	DuplicateKey     Kind = "duplicate-key"
	Encoding         Kind = "encoding"
	InputTooLarge    Kind = "input-too-large"
	NonFiniteFloat   Kind = "non-finite-float"
	BadKeyType       Kind = "bad-key-type"
	UnknownAtom      Kind = "unknown-atom"
)

// maxSnippet bounds the token snippet captured with decode errors to at
// most 10 bytes.
const maxSnippet = 10

// Error is the structured error type returned by both engines.
type Error struct {
	Kind     Kind
	Message  string
	Position int    // byte offset for decode errors; -1 when not applicable
	Snippet  []byte // up to 10 bytes starting at Position, decode errors only
	Path     string // logical path for encode errors, e.g. "root.users[3].age"
	Input    []byte // the original decode input, for caller-rendered context
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("jsonerr: %s at %s: %s", e.Kind, e.Path, e.Message)
	case e.Position >= 0:
		return fmt.Sprintf("jsonerr: %s at byte %d: %s", e.Kind, e.Position, e.Message)
	default:
		return fmt.Sprintf("jsonerr: %s: %s", e.Kind, e.Message)
	}
}

// Unwrap supports errors.Is/errors.As against a wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewDecode builds a decode-time error: O(1) construction, with a bounded
// snippet extracted from input starting at pos.
func NewDecode(kind Kind, input []byte, pos int, message string) *Error {
	end := pos + maxSnippet
	if end > len(input) {
		end = len(input)
	}
	var snippet []byte
	if pos >= 0 && pos < len(input) {
		snippet = input[pos:end]
	}
	return &Error{Kind: kind, Message: message, Position: pos, Snippet: snippet, Input: input}
}

// NewEncode builds an encode-time error carrying a logical path instead of a
// byte position, since encode errors have no byte offset into an input
// buffer to report.
func NewEncode(kind Kind, path string, message string) *Error {
	return &Error{Kind: kind, Message: message, Position: -1, Path: path}
}

// Wrap attaches a cause to a new Error of the given kind, preserving the
// original decode positional context when source is a decode error.
func Wrap(kind Kind, message string, cause error) *Error {
	e := &Error{Kind: kind, Message: message, Position: -1, Cause: cause}
	if src, ok := cause.(*Error); ok {
		e.Position = src.Position
		e.Snippet = src.Snippet
		e.Input = src.Input
		e.Path = src.Path
	}
	return e
}
