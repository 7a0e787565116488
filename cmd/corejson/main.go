// Command corejson formats and verifies JSON text using the core decoder
// and encoder.
//
// Stable ABI:
//
//	corejson format [--pretty|--minify] [file|-]
//	corejson verify [file|-]
//	corejson --help
//	corejson --version
//
// Exit codes: 0 (success), 2 (input error), 10 (internal/IO error).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lattice-json/corejson/decode"
	"github.com/lattice-json/corejson/format"
	"github.com/lattice-json/corejson/jsonerr"
)

const (
	exitSuccess    = 0
	exitInputError = 2
	exitInternal   = 10
)

const defaultMaxInputSize = 64 * 1024 * 1024

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 1 {
		switch args[0] {
		case "--help", "-h":
			_ = writeGlobalHelp(stdout)
			return exitSuccess
		case "--version":
			_ = writeLine(stdout, "corejson "+version)
			return exitSuccess
		}
	}

	if len(args) == 0 {
		_ = writeGlobalHelp(stderr)
		return exitInputError
	}

	switch args[0] {
	case "format":
		return cmdFormat(args[1:], stdin, stdout, stderr)
	case "verify":
		return cmdVerify(args[1:], stdin, stderr)
	default:
		_ = writef(stderr, "unknown command: %s\n", args[0])
		_ = writeGlobalHelp(stderr)
		return exitInputError
	}
}

type flags struct {
	pretty bool
	minify bool
	help   bool
}

func parseFlags(args []string) (flags, []string, error) {
	var f flags
	var positional []string
	consumeAsPositional := false
	for _, arg := range args {
		if consumeAsPositional {
			positional = append(positional, arg)
			continue
		}
		switch arg {
		case "--pretty":
			f.pretty = true
		case "--minify":
			f.minify = true
		case "--help", "-h":
			f.help = true
		case "--":
			consumeAsPositional = true
		case "-":
			positional = append(positional, arg)
		default:
			if strings.HasPrefix(arg, "-") {
				return flags{}, nil, fmt.Errorf("unknown option: %s", arg)
			}
			positional = append(positional, arg)
		}
	}
	return f, positional, nil
}

func cmdFormat(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fl, positional, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitInputError, "error: %v\n", err)
	}
	if fl.help {
		_ = writeFormatHelp(stderr)
		return exitSuccess
	}
	if fl.pretty && fl.minify {
		return writeErrorAndReturn(stderr, exitInputError, "error: --pretty and --minify are mutually exclusive\n")
	}
	if exitCode, ok := ensureSingleInput(positional, stderr); ok {
		return exitCode
	}

	input, err := readInput(positional, stdin)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	var out []byte
	if fl.minify {
		out, err = format.Minify(input, decode.DefaultOptions())
	} else {
		out, err = format.Pretty(input, decode.DefaultOptions(), format.Indent{})
	}
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	if _, err := stdout.Write(out); err != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: writing output: %v\n", err)
	}
	return exitSuccess
}

func cmdVerify(args []string, stdin io.Reader, stderr io.Writer) int {
	fl, positional, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitInputError, "error: %v\n", err)
	}
	if fl.help {
		_ = writeVerifyHelp(stderr)
		return exitSuccess
	}
	if exitCode, ok := ensureSingleInput(positional, stderr); ok {
		return exitCode
	}

	input, err := readInput(positional, stdin)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	if _, err := decode.Decode(input, decode.DefaultOptions()); err != nil {
		return writeClassifiedError(stderr, err)
	}
	return exitSuccess
}

func writeClassifiedError(stderr io.Writer, err error) int {
	var je *jsonerr.Error
	if errors.As(err, &je) {
		_ = writef(stderr, "error: %v\n", err)
		return exitInputError
	}
	return writeErrorAndReturn(stderr, exitInternal, "error: %v\n", err)
}

func readInput(positional []string, stdin io.Reader) ([]byte, error) {
	if len(positional) == 0 || positional[0] == "-" {
		return readBounded(stdin)
	}
	f, err := os.Open(positional[0])
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", positional[0], err)
	}
	defer func() { _ = f.Close() }()
	return readBounded(f)
}

func readBounded(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, int64(defaultMaxInputSize)+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("read input stream: %w", err)
	}
	if len(data) > defaultMaxInputSize {
		return nil, jsonerr.NewDecode(jsonerr.InputTooLarge, nil, 0,
			fmt.Sprintf("input exceeds maximum size %d bytes", defaultMaxInputSize))
	}
	return data, nil
}

func ensureSingleInput(positional []string, stderr io.Writer) (int, bool) {
	if len(positional) <= 1 {
		return 0, false
	}
	_ = writeLine(stderr, "error: multiple input files specified")
	return exitInputError, true
}

func writeErrorAndReturn(stderr io.Writer, code int, format string, args ...any) int {
	_ = writef(stderr, format, args...)
	return code
}

func writeGlobalHelp(w io.Writer) error {
	if err := writeLine(w, "usage: corejson <format|verify> [options] [file|-]"); err != nil {
		return err
	}
	if err := writeLine(w, "       corejson --help"); err != nil {
		return err
	}
	if err := writeLine(w, "       corejson --version"); err != nil {
		return err
	}
	if err := writeLine(w, "commands: format, verify"); err != nil {
		return err
	}
	return writeLine(w, "flags: --help, -h, --version")
}

func writeFormatHelp(w io.Writer) error {
	if err := writeLine(w, "usage: corejson format [--pretty|--minify] [file|-]"); err != nil {
		return err
	}
	return writeLine(w, "  Read JSON from file (or stdin), emit formatted bytes to stdout.")
}

func writeVerifyHelp(w io.Writer) error {
	if err := writeLine(w, "usage: corejson verify [file|-]"); err != nil {
		return err
	}
	return writeLine(w, "  Read JSON from file (or stdin); succeed if it decodes without error.")
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}

var version = "v0.0.0-dev"
