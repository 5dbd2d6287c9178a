package keyswap

import (
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// structTag lets a field override or drop its wire name: `keyswap:"-"`.
const structTag = "keyswap"

func init() {
	sentinel.Tag(structTag)
}

// KeysOf returns the wire names of T's exported fields, following nested
// structs and struct pointers, in order of first appearance. Fields of
// embedded structs are promoted, as encoding/json does, even when the embedded
// type is unexported. The name is taken from the keyswap tag, then the json
// tag, then the field name. Fields tagged "-" are skipped. T must be a struct type.
func KeysOf[T any]() []string {
	root := reflect.TypeFor[T]()

	// sentinel supplies registered tag values for T's own fields.
	tags := make(map[string]map[string]string)
	for _, field := range sentinel.Scan[T]().Fields {
		tags[field.Name] = field.Tags
	}

	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	collectKeys(root, tags, add, make(map[reflect.Type]bool))
	return keys
}

// BuildFor builds a dictionary from KeysOf[T]().
func BuildFor[T any](opts ...Option) (*Dictionary, error) {
	return Build(KeysOf[T](), opts...)
}

// collectKeys walks a struct type. tags holds scanned metadata for rt's own
// fields and may be nil. visiting guards recursive types.
func collectKeys(rt reflect.Type, tags map[string]map[string]string, add func(string), visiting map[reflect.Type]bool) {
	if visiting[rt] {
		return
	}
	visiting[rt] = true
	defer delete(visiting, rt)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		nested := structType(sf.Type)
		if !sf.IsExported() && (!sf.Anonymous || nested == nil) {
			continue
		}
		name, tagged, skip := wireName(sf, tags[sf.Name])
		if skip {
			continue
		}
		// An embedded struct without a tag name promotes its fields.
		if !sf.Anonymous || tagged || nested == nil {
			add(name)
		}
		if nested != nil {
			collectKeys(nested, nil, add, visiting)
		}
	}
}

// wireName resolves the serialized name of a field and reports whether a
// tag supplied it.
func wireName(sf reflect.StructField, tags map[string]string) (name string, tagged, skip bool) {
	lookup := func(tag string) (string, bool) {
		if v, ok := tags[tag]; ok {
			return v, true
		}
		return sf.Tag.Lookup(tag)
	}

	for _, tag := range []string{structTag, "json"} {
		val, ok := lookup(tag)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(val, ",")
		if name == "-" {
			return "", false, true
		}
		if name != "" {
			return name, true, false
		}
	}
	return sf.Name, false, false
}

// structType returns the struct type behind t, t's pointer element, or t's
// slice/map element, or nil.
func structType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
