package runtime

import (
	"encoding/json"
	"reflect"
	"sort"
)

// Unset is the sentinel distinguishing "argument not supplied" from
// "argument supplied as null". A top-level variable bound to Unset is
// omitted from the serialized variables mapping entirely; a variable bound
// to nil is kept and sent as JSON null. Unset is compared by type identity
// and can never be confused with an empty or zero value.
var Unset unsetType

type unsetType struct{}

// MarshalJSON degrades a sentinel that escaped the mapping passes to JSON
// null; the empty struct would otherwise encode as {}.
func (unsetType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// IsUnset reports whether v is the Unset sentinel or an Opt left in its
// unset state.
func IsUnset(v any) bool {
	switch x := v.(type) {
	case unsetType:
		return true
	case optional:
		_, s := x.optValue()
		return s == stateUnset
	}
	return false
}

type state uint8

const (
	stateUnset state = iota
	stateNull
	stateSet
)

// optional is the interface all Opt instantiations satisfy. It lets the
// normalization pass inspect an Opt without knowing its type parameter.
type optional interface {
	optValue() (any, state)
}

// Opt is a tri-state optional value: unset, null, or set. The zero value is
// unset, so an omitted argument is simply the zero Opt. Generated client
// methods use Opt for nullable and defaulted variables.
type Opt[T any] struct {
	value T
	state state
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, state: stateSet}
}

// Null returns an Opt representing an explicit null.
func Null[T any]() Opt[T] {
	return Opt[T]{state: stateNull}
}

// IsUnset reports whether the value was never supplied.
func (o Opt[T]) IsUnset() bool { return o.state == stateUnset }

// IsNull reports whether the value is an explicit null.
func (o Opt[T]) IsNull() bool { return o.state == stateNull }

// Value returns the held value and whether one is set.
func (o Opt[T]) Value() (T, bool) {
	return o.value, o.state == stateSet
}

// MarshalJSON encodes set values and renders unset and null states as JSON
// null. Unset values nested below the top level of a variables structure
// cannot be omitted (JSON arrays have no holes), so they degrade to null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.state != stateSet {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o Opt[T]) optValue() (any, state) { return o.value, o.state }

// Mapper is implemented by structured input models. ToMap returns the plain
// serializable form of the model keyed by field alias; entries left at their
// Unset state are dropped during normalization.
type Mapper interface {
	ToMap() map[string]any
}

// Serialize converts a bound argument into its plain JSON-serializable form:
// Opt values unwrap (unset stays the Unset sentinel so mapping passes can
// drop it), Mapper models convert through ToMap, sequences convert
// element-wise to []any with unset elements becoming null (arrays have no
// holes to drop into), string-keyed mappings convert to map[string]any
// with unset entries dropped, and anything else passes through unchanged.
// Upload references are preserved for later file extraction.
func Serialize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case unsetType:
		return Unset
	case optional:
		inner, s := x.optValue()
		switch s {
		case stateUnset:
			return Unset
		case stateNull:
			return nil
		}
		return Serialize(inner)
	case Mapper:
		return serializeMap(x.ToMap())
	case *Upload:
		return x
	case map[string]any:
		return serializeMap(x)
	case json.RawMessage:
		return x
	case string, bool, int, int32, int64, float32, float64:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			sv := Serialize(rv.Index(i).Interface())
			if IsUnset(sv) {
				// Arrays have no holes; an unset element becomes null.
				sv = nil
			}
			out[i] = sv
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return serializeMap(m)
	}
	return v
}

// serializeMap normalizes every entry of m, dropping entries whose value is
// unset.
func serializeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		sv := Serialize(value)
		if IsUnset(sv) {
			continue
		}
		out[key] = sv
	}
	return out
}

// sortedKeys returns the keys of m in lexical order so that file extraction
// walks a mapping deterministically.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
