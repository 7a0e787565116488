package value

import "errors"

// ErrFragmentNotValidated is wrapped into the error FragmentValidated
// returns when the supplied bytes fail a fast decode check.
var ErrFragmentNotValidated = errors.New("value: fragment bytes failed validation decode")

// FragmentBytes returns a Fragment whose bytes are emitted verbatim by the
// encoder with no validation. The caller is responsible for ensuring raw is
// valid JSON; the decoder never produces Fragment values.
func FragmentBytes(raw []byte) Value {
	return Value{kind: Fragment, s: string(raw)}
}

// FragmentValidated returns a Fragment like FragmentBytes, but first
// attempts to decode raw using decodeFunc (supplied by the decode package to
// avoid an import cycle) to fail fast on malformed input rather than
// deferring the failure to encode time.
func FragmentValidated(raw []byte, decodeFunc func([]byte) error) (Value, error) {
	if err := decodeFunc(raw); err != nil {
		return Value{}, errors.Join(ErrFragmentNotValidated, err)
	}
	return FragmentBytes(raw), nil
}

// FragmentFunc returns a Fragment whose payload is produced lazily, at most
// once per encode call, by calling producer with the encoder's
// Options.FragmentConfig value (not the encode options themselves). Callers must not rely on the identity of the returned
// bytes across separate encode calls.
func FragmentFunc(producer Producer) Value {
	return Value{kind: Fragment, fragmentFunc: producer}
}

// FragmentRaw returns the raw bytes for a non-deferred Fragment, or nil if
// this Fragment uses a deferred producer (check IsDeferred first).
func (v Value) FragmentRaw() []byte {
	if v.fragmentFunc != nil {
		return nil
	}
	return []byte(v.s)
}

// IsDeferred reports whether this Fragment uses a deferred producer rather
// than static bytes.
func (v Value) IsDeferred() bool {
	return v.fragmentFunc != nil
}

// Resolve invokes the deferred producer with cfg and returns its bytes. It
// panics if this Fragment is not deferred; callers should check IsDeferred
// first, which the encoder always does.
func (v Value) Resolve(cfg any) ([]byte, error) {
	if v.fragmentFunc == nil {
		panic("value: Resolve called on a non-deferred Fragment")
	}
	return v.fragmentFunc(cfg)
}
