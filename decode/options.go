package decode

// KeysMode selects how object keys are post-processed as they are decoded.
type KeysMode int

const (
	// KeysStrings materializes keys as ordinary Go strings (the default).
	KeysStrings KeysMode = iota
	// KeysIntern materializes keys as strings, reusing the per-call key
	// intern cache for escape-free keys.
	KeysIntern
	// KeysAtoms converts every key to a host-level interned symbol via
	// Options.Atoms, creating the symbol if it does not already exist.
	KeysAtoms
	// KeysAtomsStrict is like KeysAtoms, but fails with kind unknown-atom
	// if the symbol does not already exist in Options.Atoms.
	KeysAtomsStrict
	// KeysTransform applies Options.KeyTransform to every decoded key.
	KeysTransform
)

// ObjectsMode selects which Value variant an object decodes to.
type ObjectsMode int

const (
	// ObjectsMap decodes objects as the Obj variant.
	ObjectsMap ObjectsMode = iota
	// ObjectsOrdered decodes objects as the OrderedObj variant.
	ObjectsOrdered
)

// FloatsMode selects which Value variant a non-integer number decodes to.
type FloatsMode int

const (
	// FloatsNative decodes non-integer numbers as the Float variant.
	FloatsNative FloatsMode = iota
	// FloatsDecimal decodes non-integer numbers as the Decimal variant,
	// preserving the canonicalized textual form instead of rounding to
	// binary64.
	FloatsDecimal
)

// StringsMode is a caller hint; the core's semantics are identical either
// way (the caller always receives an owned value).
type StringsMode int

const (
	StringsCopy StringsMode = iota
	StringsReference
)

// DuplicateKeysMode selects the decoder's behavior when an object contains
// the same key more than once.
type DuplicateKeysMode int

const (
	// DuplicateKeysLastWins keeps the last occurrence's value (the default).
	DuplicateKeysLastWins DuplicateKeysMode = iota
	// DuplicateKeysError fails with kind duplicate-key.
	DuplicateKeysError
)

// Atoms is the host-level symbol table used by KeysAtoms/KeysAtomsStrict,
// exposed as a minimal interface so the core can realize the keys option
// without depending on any concrete host runtime.
type Atoms interface {
	// Intern returns the existing symbol for s, creating one if absent.
	Intern(s string) string
	// Lookup returns the existing symbol for s without creating one.
	Lookup(s string) (string, bool)
}

// Options configures a single decode invocation.
type Options struct {
	Keys         KeysMode
	Atoms        Atoms          // required when Keys is KeysAtoms or KeysAtomsStrict
	KeyTransform func(string) string // required when Keys is KeysTransform

	Objects ObjectsMode
	Floats  FloatsMode
	Strings StringsMode

	// MaxIntegerDigits bounds an integer literal's digit count before
	// '.'/'e'/'E'. 0 disables the bound. Default (via DefaultOptions) is
	// 1024.
	MaxIntegerDigits int

	DuplicateKeys DuplicateKeysMode

	// ValidateStrings, when true (the default), validates string bodies
	// as UTF-8 after extraction. When false, malformed UTF-8 in string
	// bodies is passed through unchecked.
	ValidateStrings bool

	// MaxBytes rejects input exceeding this many bytes before parsing
	// begins. 0 means unlimited.
	MaxBytes int
}

// DefaultOptions returns the documented default configuration:
// string keys, Obj objects, native Float, copy-semantics strings, a 1024
// digit cap on integers, last-wins duplicate keys, and string validation
// enabled.
func DefaultOptions() Options {
	return Options{
		Keys:             KeysStrings,
		Objects:          ObjectsMap,
		Floats:           FloatsNative,
		Strings:          StringsCopy,
		MaxIntegerDigits: 1024,
		DuplicateKeys:    DuplicateKeysLastWins,
		ValidateStrings:  true,
	}
}
