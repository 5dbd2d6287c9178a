package keyswap

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "opaque"
	}
}

// Value is a JSON-like value. Concrete types:
//
//   - Null
//   - Bool
//   - Number
//   - String
//   - Array
//   - *Object
//   - Opaque (any value the model does not recognize; never transformed)
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text so codecs round-trip it exactly.
type Number string

// String is a JSON string.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Opaque carries a value of a type the model does not recognize, such as a
// BSON ObjectID, or a number whose wire width a codec must keep, such as a
// BSON int32. Transforms pass it through untouched.
type Opaque struct {
	V any
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Opaque) Kind() Kind { return KindOpaque }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Object) isValue() {}
func (Opaque) isValue()  {}

// Int returns a Number holding the decimal literal of i.
func Int(i int64) Number { return Number(strconv.FormatInt(i, 10)) }

// Float returns a Number holding the shortest literal of f. The literal always
// carries a decimal point or exponent, so 1.0 stays a float through codecs
// that distinguish integers from floats.
func Float(f float64) Number {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return Number(s)
}

// IsInteger reports whether the literal has no fraction or exponent.
func (n Number) IsInteger() bool {
	return !strings.ContainsAny(string(n), ".eEIN")
}

// Int64 parses the literal as an integer.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Float64 parses the literal as a float.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// Object is an insertion-ordered string-keyed container. It exposes no members
// other than its own entries: any string, including "toString" or
// "hasOwnProperty", is stored as plain data.
//
// The zero value is an empty object. Reads on a nil *Object see no entries.
type Object struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object. Set on it performs no key validation;
// use SafeAssign when the key comes from untrusted input.
func NewObject() *Object {
	return &Object{entries: orderedmap.New[string, Value]()}
}

func (*Object) Kind() Kind { return KindObject }

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if o.entries == nil {
		o.entries = orderedmap.New[string, Value]()
	}
	o.entries.Set(key, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.entries == nil {
		return nil, false
	}
	return o.entries.Get(key)
}

// Has reports whether key is an own entry.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil || o.entries == nil {
		return false
	}
	_, ok := o.entries.Delete(key)
	return ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil || o.entries == nil {
		return 0
	}
	return o.entries.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(k string, _ Value) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil || o.entries == nil {
		return
	}
	for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Equal reports whether a and b are structurally equal. Object entries are
// compared by key regardless of order; arrays are compared element-wise.
// Numbers compare by numeric value when both literals parse.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		bv := b.(Number)
		if av == bv {
			return true
		}
		af, aerr := av.Float64()
		bf, berr := bv.Float64()
		return aerr == nil && berr == nil && af == bf
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(k string, v Value) bool {
			other, ok := bv.Get(k)
			equal = ok && Equal(v, other)
			return equal
		})
		return equal
	case Opaque:
		return reflect.DeepEqual(av.V, b.(Opaque).V)
	}
	return false
}

// FromAny converts a plain Go value (as produced by encoding/json into an any)
// into a Value. Go maps carry no order, so map keys are visited sorted.
// Unrecognized types become Opaque.
func FromAny(v any) Value {
	switch tv := v.(type) {
	case nil:
		return Null{}
	case Value:
		return tv
	case bool:
		return Bool(tv)
	case string:
		return String(tv)
	case json.Number:
		return Number(tv)
	case float64:
		return Float(tv)
	case float32:
		return Float(float64(tv))
	case int:
		return Int(int64(tv))
	case int8:
		return Int(int64(tv))
	case int16:
		return Int(int64(tv))
	case int32:
		return Int(int64(tv))
	case int64:
		return Int(tv)
	case uint:
		return Number(strconv.FormatUint(uint64(tv), 10))
	case uint8:
		return Number(strconv.FormatUint(uint64(tv), 10))
	case uint16:
		return Number(strconv.FormatUint(uint64(tv), 10))
	case uint32:
		return Number(strconv.FormatUint(uint64(tv), 10))
	case uint64:
		return Number(strconv.FormatUint(tv, 10))
	case []any:
		arr := make(Array, len(tv))
		for i, elem := range tv {
			arr[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(tv[k]))
		}
		return obj
	default:
		return Opaque{V: v}
	}
}

// ToAny converts a Value back into plain Go values: nil, bool, json.Number,
// string, []any and map[string]any. Opaque values are unwrapped.
func ToAny(v Value) any {
	switch tv := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(tv)
	case Number:
		return json.Number(tv)
	case String:
		return string(tv)
	case Array:
		out := make([]any, len(tv))
		for i, elem := range tv {
			out[i] = ToAny(elem)
		}
		return out
	case *Object:
		out := make(map[string]any, tv.Len())
		tv.Range(func(k string, elem Value) bool {
			out[k] = ToAny(elem)
			return true
		})
		return out
	case Opaque:
		return tv.V
	}
	return nil
}
