// Package value implements the JSON core's tagged-sum value model: Null,
// Bool, Int, Float, Decimal, Str, Arr, Obj, OrderedObj, and Fragment. A
// decoder builds a tree of Value during a single pass; an encoder walks an
// existing tree without mutating it. Value is a struct with a Kind
// discriminant rather than an interface with one concrete type per variant,
// keeping scalar construction allocation-free.
package value

import "github.com/lattice-json/corejson/numeric"

// Kind identifies which variant of the sum type a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	Decimal
	Str
	Arr
	Obj
	OrderedObj
	Fragment
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Decimal:
		return "Decimal"
	case Str:
		return "Str"
	case Arr:
		return "Arr"
	case Obj:
		return "Obj"
	case OrderedObj:
		return "OrderedObj"
	case Fragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Member is a single (key, value) pair, used for both Obj and OrderedObj.
// Obj's iteration order is insertion order in this implementation (a Go map
// would discard it, and a slice avoids a second representation for the
// ordered variant).
type Member struct {
	Key   string
	Value Value
}

// Producer is a deferred Fragment payload: a function that receives the
// value the encoder holds in its Options.FragmentConfig field, passed
// through unchanged, and returns the bytes to splice into the output. The
// encoder's other options (escape mode, pretty printing, key sorting) are
// not passed to it. It is invoked at most once per encode call, at
// the moment the encoder reaches the Fragment.
type Producer func(cfg any) ([]byte, error)

// Value is the JSON core's in-memory representation of a decoded document,
// or a value tree about to be encoded.
type Value struct {
	kind Kind

	b bool
	i numeric.Int
	f float64
	s string // Str contents, Decimal's canonical string, or Fragment raw bytes viewed as string

	arr     []Value
	members []Member // Obj (unordered semantics) or OrderedObj (ordered semantics)

	fragmentFunc Producer
}

// KindOf reports v's variant.
func (v Value) KindOf() Kind { return v.kind }

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: Null} }

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewInt returns an Int value from an arbitrary-precision integer.
func NewInt(n numeric.Int) Value { return Value{kind: Int, i: n} }

// NewIntFromInt64 returns an Int value from a small int64.
func NewIntFromInt64(n int64) Value { return Value{kind: Int, i: numeric.Int{Small: n}} }

// NewFloat returns a Float value.
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

// NewDecimal returns a Decimal value holding a canonicalized decimal string:
// no leading '+', no leading zeros except "0.", no trailing fractional
// zeros unless required by precision, lower-case 'e'.
func NewDecimal(canonical string) Value { return Value{kind: Decimal, s: canonical} }

// NewStr returns a Str value. s must be valid UTF-8 per the data model's
// invariant; callers that cannot guarantee this should route input through
// the decoder's validate_strings option instead of constructing Value
// directly.
func NewStr(s string) Value { return Value{kind: Str, s: s} }

// NewArr returns an Arr value wrapping items in order.
func NewArr(items []Value) Value { return Value{kind: Arr, arr: items} }

// NewObj returns an Obj value. Duplicate keys are the caller's
// responsibility to have already resolved (last-write-wins or rejected) per
// the decoder's duplicate_keys option.
func NewObj(entries []Member) Value { return Value{kind: Obj, members: entries} }

// NewOrderedObj returns an OrderedObj value whose iteration order on encode
// is exactly entries' order.
func NewOrderedObj(entries []Member) Value { return Value{kind: OrderedObj, members: entries} }

// BoolValue returns the Bool payload; valid only when KindOf() == Bool.
func (v Value) BoolValue() bool { return v.b }

// IntValue returns the Int payload; valid only when KindOf() == Int.
func (v Value) IntValue() numeric.Int { return v.i }

// FloatValue returns the Float payload; valid only when KindOf() == Float.
func (v Value) FloatValue() float64 { return v.f }

// DecimalValue returns the Decimal payload; valid only when KindOf() == Decimal.
func (v Value) DecimalValue() string { return v.s }

// StrValue returns the Str payload; valid only when KindOf() == Str.
func (v Value) StrValue() string { return v.s }

// Items returns the Arr payload; valid only when KindOf() == Arr.
func (v Value) Items() []Value { return v.arr }

// MembersOf returns the Obj or OrderedObj payload.
func (v Value) MembersOf() []Member { return v.members }

// Get performs a linear-scan lookup by key, acceptable for the small and
// medium object sizes this model is meant for. It returns the first
// matching member for Obj (which should already be last-write-wins
// resolved) or OrderedObj.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Set mutates an OrderedObj in place, preserving insertion order: updating
// the existing member if key is present, else appending. It panics if v is
// not an OrderedObj, since Obj's immutability-by-convention would make
// in-place mutation surprising.
func (v *Value) Set(key string, val Value) {
	if v.kind != OrderedObj {
		panic("value: Set is only defined for OrderedObj")
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Delete removes a member from an OrderedObj in place, preserving the order
// of the remaining members. It is a no-op if key is absent. It panics if v
// is not an OrderedObj.
func (v *Value) Delete(key string) {
	if v.kind != OrderedObj {
		panic("value: Delete is only defined for OrderedObj")
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members = append(v.members[:i], v.members[i+1:]...)
			return
		}
	}
}
