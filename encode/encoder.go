// Package encode implements the JSON core's encoder: a
// recursive walker from a value.Value tree to a byte sequence, configurable
// via Options.
package encode

import (
	"fmt"
	"math"
	"sort"

	"github.com/lattice-json/corejson/depth"
	"github.com/lattice-json/corejson/jsonerr"
	"github.com/lattice-json/corejson/numeric"
	"github.com/lattice-json/corejson/value"
)

type encoder struct {
	opts  Options
	guard depth.Guard
	path  []string // logical path components, for error reporting
}

// Encode serializes v to a byte sequence under opts.
func Encode(v value.Value, opts Options) ([]byte, error) {
	e := &encoder{opts: opts}
	buf, err := e.encodeValue(nil, v, 0)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (e *encoder) pathString() string {
	if len(e.path) == 0 {
		return "root"
	}
	s := "root"
	for _, p := range e.path {
		s += p
	}
	return s
}

func (e *encoder) fail(kind jsonerr.Kind, message string) error {
	return jsonerr.NewEncode(kind, e.pathString(), message)
}

func (e *encoder) encodeValue(buf []byte, v value.Value, level int) ([]byte, error) {
	switch v.KindOf() {
	case value.Null:
		return append(buf, "null"...), nil
	case value.Bool:
		if v.BoolValue() {
			return append(buf, "true"...), nil
		}
		return append(buf, "false"...), nil
	case value.Int:
		return numeric.AppendInt(buf, v.IntValue()), nil
	case value.Float:
		return e.encodeFloat(buf, v.FloatValue())
	case value.Decimal:
		return append(buf, v.DecimalValue()...), nil
	case value.Str:
		return e.encodeString(buf, v.StrValue()), nil
	case value.Arr:
		return e.encodeArray(buf, v, level)
	case value.Obj, value.OrderedObj:
		return e.encodeObject(buf, v, level)
	case value.Fragment:
		return e.encodeFragment(buf, v)
	default:
		return nil, e.fail(jsonerr.Encoding, fmt.Sprintf("unknown value kind %v", v.KindOf()))
	}
}

func (e *encoder) encodeFloat(buf []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, e.fail(jsonerr.NonFiniteFloat, "NaN and Infinity have no JSON representation")
	}
	s, err := numeric.FormatFloat(f)
	if err != nil {
		return nil, e.fail(jsonerr.NonFiniteFloat, err.Error())
	}
	return append(buf, s...), nil
}

func (e *encoder) encodeFragment(buf []byte, v value.Value) ([]byte, error) {
	var raw []byte
	if v.IsDeferred() {
		resolved, err := v.Resolve(e.opts.FragmentConfig)
		if err != nil {
			return nil, e.fail(jsonerr.Encoding, fmt.Sprintf("fragment producer failed: %v", err))
		}
		raw = resolved
	} else {
		raw = v.FragmentRaw()
	}
	return append(buf, raw...), nil
}

func (e *encoder) encodeArray(buf []byte, v value.Value, level int) ([]byte, error) {
	if err := e.guard.Enter(); err != nil {
		return nil, e.fail(jsonerr.DepthExceeded, err.Error())
	}
	defer e.guard.Leave()

	items := v.Items()
	buf = append(buf, '[')
	childLevel := level + 1
	for i, item := range items {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = e.newlineIndent(buf, childLevel)
		e.path = append(e.path, fmt.Sprintf("[%d]", i))
		var err error
		buf, err = e.encodeValue(buf, item, childLevel)
		e.path = e.path[:len(e.path)-1]
		if err != nil {
			return nil, err
		}
	}
	if len(items) > 0 {
		buf = e.newlineIndent(buf, level)
	}
	buf = append(buf, ']')
	return buf, nil
}

func (e *encoder) encodeObject(buf []byte, v value.Value, level int) ([]byte, error) {
	if err := e.guard.Enter(); err != nil {
		return nil, e.fail(jsonerr.DepthExceeded, err.Error())
	}
	defer e.guard.Leave()

	members := v.MembersOf()
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	if e.opts.SortKeys && v.KindOf() == value.Obj {
		sort.Slice(order, func(i, j int) bool {
			return members[order[i]].Key < members[order[j]].Key
		})
	}

	if e.opts.Maps == MapsStrict {
		seen := make(map[string]struct{}, len(members))
		for _, idx := range order {
			k := members[idx].Key
			if _, dup := seen[k]; dup {
				e.path = append(e.path, "."+k)
				err := e.fail(jsonerr.DuplicateKey, fmt.Sprintf("duplicate serialized key %q", k))
				e.path = e.path[:len(e.path)-1]
				return nil, err
			}
			seen[k] = struct{}{}
		}
	}

	buf = append(buf, '{')
	childLevel := level + 1
	for n, idx := range order {
		m := members[idx]
		if n > 0 {
			buf = append(buf, ',')
		}
		buf = e.newlineIndent(buf, childLevel)
		buf = e.encodeString(buf, m.Key)
		buf = append(buf, ':')
		buf = append(buf, e.opts.Pretty.colonSpace()...)
		e.path = append(e.path, "."+m.Key)
		var err error
		buf, err = e.encodeValue(buf, m.Value, childLevel)
		e.path = e.path[:len(e.path)-1]
		if err != nil {
			return nil, err
		}
	}
	if len(members) > 0 {
		buf = e.newlineIndent(buf, level)
	}
	buf = append(buf, '}')
	return buf, nil
}

func (e *encoder) newlineIndent(buf []byte, level int) []byte {
	if !e.opts.Pretty.Enabled {
		return buf
	}
	buf = append(buf, e.opts.Pretty.lineSeparator()...)
	for i := 0; i < level; i++ {
		buf = append(buf, e.opts.Pretty.Indent...)
	}
	return buf
}

func (p Pretty) colonSpace() string {
	if !p.Enabled {
		return ""
	}
	return p.afterColon()
}
