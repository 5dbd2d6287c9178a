package keyswap

import (
	"sort"
	"strconv"
	"unicode/utf8"
)

// RootPath is the path label used for the top of a validated value.
const RootPath = "root"

// Identifiers that rewrite the prototype chain of a JavaScript object.
var reservedIdentifiers = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// Inherited accessor and method names that a plain JavaScript object exposes.
var reservedMembers = map[string]bool{
	"__defineGetter__":     true,
	"__defineSetter__":     true,
	"__lookupGetter__":     true,
	"__lookupSetter__":     true,
	"hasOwnProperty":       true,
	"isPrototypeOf":        true,
	"propertyIsEnumerable": true,
	"toString":             true,
	"valueOf":              true,
	"toLocaleString":       true,
}

// SanitizeOptions controls Sanitize.
type SanitizeOptions struct {
	RemoveUnsafe  bool // Drop unsafe keys (ignored when ThrowOnUnsafe is set)
	ThrowOnUnsafe bool // Fail on the first unsafe key
	Deep          bool // Recurse into nested objects and arrays
}

// DefaultSanitizeOptions drops unsafe keys at every depth.
func DefaultSanitizeOptions() SanitizeOptions {
	return SanitizeOptions{RemoveUnsafe: true, Deep: true}
}

// IsSafeKey reports whether key may be written as a property name. Reserved
// prototype identifiers, inherited accessor/method names, and keys holding a
// control character (U+0000-U+001F, U+007F-U+009F) are unsafe.
func IsSafeKey(key string) bool {
	return checkKey("key", key) == nil
}

// checkKey returns why key is unsafe, or nil.
func checkKey(role, key string) *UnsafeKeyError {
	if reservedIdentifiers[key] {
		return newUnsafeKeyError(role, key, "is a reserved identifier")
	}
	if reservedMembers[key] {
		return newUnsafeKeyError(role, key, "is a reserved accessor or method name")
	}
	for i := 0; i < len(key); {
		r, size := utf8.DecodeRuneInString(key[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8: judge the raw byte, which may be a C1 control.
			r = rune(key[i])
		}
		if isControl(r) {
			return newUnsafeKeyError(role, key, "contains control character "+strconv.QuoteRune(r))
		}
		i += size
	}
	return nil
}

func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

// ValidateKeys fails on the first unsafe key of mapping. Only the mapping's own
// keys are checked. Keys are visited in sorted order so the reported key is stable.
func ValidateKeys(mapping map[string]string) error {
	for _, k := range sortedKeys(mapping) {
		if err := checkKey("key", k); err != nil {
			return err
		}
	}
	return nil
}

// validateTargets fails on the first mapping value that is not a safe key.
func validateTargets(mapping map[string]string) error {
	for _, k := range sortedKeys(mapping) {
		if err := checkKey("mapped key", mapping[k]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStructure walks v and fails on the first unsafe object key, reporting
// its full path (e.g. root.user.profile.__proto__ or root.items[2].valueOf).
// Objects are visited in insertion order and arrays in index order. An empty
// path starts at RootPath.
func ValidateStructure(v Value, path string) error {
	if path == "" {
		path = RootPath
	}
	switch tv := v.(type) {
	case *Object:
		var err error
		tv.Range(func(k string, elem Value) bool {
			childPath := path + "." + k
			if cause := checkKey("key", k); cause != nil {
				err = newStructuralError(childPath, k, cause)
				return false
			}
			err = ValidateStructure(elem, childPath)
			return err == nil
		})
		return err
	case Array:
		for i, elem := range tv {
			if err := ValidateStructure(elem, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewSafeContainer returns an empty object with no members besides those assigned to it.
func NewSafeContainer() *Object {
	return NewObject()
}

// SafeAssign stores v under key, refusing unsafe keys.
func SafeAssign(container *Object, key string, v Value) error {
	if container == nil {
		return newConfigError("container", "", "must not be nil")
	}
	if err := checkKey("key", key); err != nil {
		return err
	}
	container.Set(key, v)
	return nil
}

// Sanitize returns a copy of v with unsafe keys dropped, kept, or reported
// according to opts. Scalars are returned unchanged. Without Deep only the
// top level is rebuilt and nested values are shared with v.
func Sanitize(v Value, opts SanitizeOptions) (Value, error) {
	return sanitize(v, opts, RootPath)
}

func sanitize(v Value, opts SanitizeOptions, path string) (Value, error) {
	switch tv := v.(type) {
	case *Object:
		out := NewSafeContainer()
		var err error
		tv.Range(func(k string, elem Value) bool {
			childPath := path + "." + k
			if cause := checkKey("key", k); cause != nil {
				if opts.ThrowOnUnsafe {
					err = newStructuralError(childPath, k, cause)
					return false
				}
				if opts.RemoveUnsafe {
					return true
				}
			}
			if opts.Deep {
				elem, err = sanitize(elem, opts, childPath)
				if err != nil {
					return false
				}
			}
			out.Set(k, elem)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	case Array:
		out := make(Array, len(tv))
		for i, elem := range tv {
			if opts.Deep {
				var err error
				if elem, err = sanitize(elem, opts, path+"["+strconv.Itoa(i)+"]"); err != nil {
					return nil, err
				}
			}
			out[i] = elem
		}
		return out, nil
	default:
		return v, nil
	}
}

// IsSafeValue reports whether v is an object whose every key, at every depth, is safe.
func IsSafeValue(v Value) bool {
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		return false
	}
	return ValidateStructure(obj, RootPath) == nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
