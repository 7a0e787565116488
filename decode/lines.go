package decode

import (
	"iter"

	"github.com/lattice-json/corejson/value"
)

// DecodeLines decodes data as newline-delimited JSON (JSONL): each
// non-blank line is decoded independently under opts, yielding one decoded
// value (or error) per line and stopping at the first error — a decode
// failure on one line leaves the rest of data unparsed rather than
// continuing past it. It is a Go-native convenience the core spec does not
// require of every host binding, built as a range-over-func iterator so
// callers can also stop early (before any error) without reading the rest
// of data.
//
// A blank line (after trimming a trailing '\r') is skipped rather than
// decoded, matching how line-oriented JSON logs are produced in practice.
func DecodeLines(data []byte, opts Options) iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		start := 0
		for start <= len(data) {
			end := start
			for end < len(data) && data[end] != '\n' {
				end++
			}
			line := data[start:end]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			if len(trimLineWhitespace(line)) > 0 {
				v, err := Decode(line, opts)
				if !yield(v, err) {
					return
				}
				if err != nil {
					return
				}
			}
			if end >= len(data) {
				return
			}
			start = end + 1
		}
	}
}

func trimLineWhitespace(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && isLineSpace(b[i]) {
		i++
	}
	for j > i && isLineSpace(b[j-1]) {
		j--
	}
	return b[i:j]
}

func isLineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
