// Package keyswap provides reversible substitution of object keys in
// JSON-like data with short tokens.
//
// A Dictionary maps each source key to a token generated from its position in
// an ordered key list. Tokenize rewrites every object key found in the
// dictionary, at every depth, and Detokenize restores them. Values are never
// changed, only the keys that carry them.
//
// # Basic Usage
//
//	dict, _ := keyswap.Build([]string{"name", "email", "address"})
//	// name -> a, email -> b, address -> c
//
//	compact, _ := dict.Tokenize(user)     // {"a": "Ada", "b": "ada@example.com"}
//	original, _ := dict.Detokenize(compact)
//
// # Encoding Methods
//
// Tokens are produced by one of the following methods:
//
//   - alphabetic: a..z, aa, ab, ... (bijective base-26, the default)
//   - numeric: 0, 1, 2, ...
//   - padded: 0000, 0001, ... (width set by WithPadding)
//   - base64: a..z A..Z 0..9 _ $, then ba, bb, ...
//   - short: clock digits plus a base-36 counter (not deterministic)
//   - custom: any Generator passed with WithCustom (not deterministic)
//
// WithPrefix prepends a fixed string to every token.
//
// # Key Safety
//
// Output keys may be consumed by JavaScript hosts, where certain property names
// rewrite an object's prototype or shadow inherited methods. Every key and
// token is checked by IsSafeKey, and inputs are walked with ValidateStructure
// before anything is built. Failures are typed: UnsafeKeyError,
// StructuralError (with the offending path), CollisionError, ConfigError.
//
// # Codecs
//
// Processor combines a Dictionary with a Codec to tokenize encoded payloads.
// Order-preserving codecs are available as subpackages:
//
//   - json - JSON (application/json)
//   - yaml - YAML (application/yaml)
//   - msgpack - MessagePack (application/msgpack)
//   - bson - BSON (application/bson)
package keyswap

// ValidateDictionaryKeys is an alias for ValidateKeys.
func ValidateDictionaryKeys(mapping map[string]string) error {
	return ValidateKeys(mapping)
}

// ValidateObjectKeys is an alias for ValidateStructure.
func ValidateObjectKeys(v Value, path string) error {
	return ValidateStructure(v, path)
}

// CreateSafeContainer is an alias for NewSafeContainer.
func CreateSafeContainer() *Object {
	return NewSafeContainer()
}

// SanitizeObject is an alias for Sanitize.
func SanitizeObject(v Value, opts SanitizeOptions) (Value, error) {
	return Sanitize(v, opts)
}

// IsSafeObject is an alias for IsSafeValue.
func IsSafeObject(v Value) bool {
	return IsSafeValue(v)
}
