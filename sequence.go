package keyswap

import (
	"strconv"
	"strings"
)

const (
	alphabet   = "abcdefghijklmnopqrstuvwxyz"
	base64Like = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$"
)

// Generate returns the token for a zero-based index under method. Options
// other than the method (padding, custom generator, clock) are honored; the
// prefix is not applied here, Build applies it.
//
// MethodShort depends on the clock and MethodCustom on the caller's function,
// so only the other methods are pure functions of their arguments.
func Generate(index int, method Method, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	cfg.method = method.resolve()
	if err := cfg.validate(); err != nil {
		return "", err
	}
	return generate(index, &cfg)
}

func generate(index int, cfg *config) (string, error) {
	if index < 0 {
		return "", newConfigError("index", cfg.method, "must not be negative, got "+strconv.Itoa(index))
	}
	switch cfg.method {
	case MethodNumeric:
		return strconv.Itoa(index), nil
	case MethodPadded:
		return padded(index, cfg.padding), nil
	case MethodBase64:
		return base64Token(index), nil
	case MethodShort:
		return shortToken(index, cfg.clock), nil
	case MethodCustom:
		if cfg.custom == nil {
			return "", newConfigError("generator", cfg.method, "custom method requires a generator function")
		}
		return cfg.custom(index), nil
	default:
		return alphabeticToken(index), nil
	}
}

// alphabeticToken encodes index in bijective base-26: 0->a, 25->z, 26->aa.
func alphabeticToken(index int) string {
	var buf []byte
	for index >= 0 {
		buf = append(buf, alphabet[index%26])
		index = index/26 - 1
	}
	reverse(buf)
	return string(buf)
}

// base64Token encodes index positionally over base64Like: 0->a, 63->$, 64->ba.
func base64Token(index int) string {
	if index == 0 {
		return base64Like[:1]
	}
	var buf []byte
	for index > 0 {
		buf = append(buf, base64Like[index%64])
		index /= 64
	}
	reverse(buf)
	return string(buf)
}

// padded left-pads the decimal index with zeros. Longer values are not truncated.
func padded(index, width int) string {
	s := strconv.Itoa(index)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// shortToken joins the last four base-36 digits of the clock's millisecond
// timestamp with the index in base-36, zero-padded to two digits.
func shortToken(index int, clock Clock) string {
	stamp := strconv.FormatInt(clock.Now().UnixMilli(), 36)
	if len(stamp) > 4 {
		stamp = stamp[len(stamp)-4:]
	}
	counter := strconv.FormatInt(int64(index), 36)
	if len(counter) < 2 {
		counter = "0" + counter
	}
	return stamp + counter
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
