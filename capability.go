package keyswap

// Method selects the encoding used to turn a sequence index into a token.
type Method string

const (
	// MethodAlphabetic uses bijective base-26 lowercase letters: a..z, aa, ab, ...
	MethodAlphabetic Method = "alphabetic"

	// MethodNumeric uses the decimal index: 0, 1, 2, ...
	MethodNumeric Method = "numeric"

	// MethodPadded uses the decimal index left-padded with zeros: 0000, 0001, ...
	MethodPadded Method = "padded"

	// MethodBase64 uses positional base-64 over a-z A-Z 0-9 _ $.
	MethodBase64 Method = "base64"

	// MethodShort prefixes a base-36 counter with low-order clock digits.
	// Not deterministic: tokens change with wall-clock time.
	MethodShort Method = "short"

	// MethodCustom delegates to a caller-supplied generator (see WithCustom).
	// Treated as not deterministic because the generator is opaque.
	MethodCustom Method = "custom"
)

// validMethods contains all known methods and whether each is deterministic.
var validMethods = map[Method]bool{
	MethodAlphabetic: true,
	MethodNumeric:    true,
	MethodPadded:     true,
	MethodBase64:     true,
	MethodShort:      false,
	MethodCustom:     false,
}

// IsValidMethod returns true if the method is a known encoding method.
func IsValidMethod(m Method) bool {
	_, ok := validMethods[m]
	return ok
}

// Methods returns every known method in declaration order.
func Methods() []Method {
	return []Method{MethodAlphabetic, MethodNumeric, MethodPadded, MethodBase64, MethodShort, MethodCustom}
}

// Deterministic reports whether identical inputs always yield identical tokens.
// Unknown methods resolve to alphabetic and are therefore deterministic.
func (m Method) Deterministic() bool {
	return validMethods[m.resolve()]
}

// resolve maps unknown or empty methods to MethodAlphabetic.
func (m Method) resolve() Method {
	if IsValidMethod(m) {
		return m
	}
	return MethodAlphabetic
}
