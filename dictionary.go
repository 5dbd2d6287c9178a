package keyswap

import (
	"context"
	"maps"
	"time"
)

// Dictionary is an immutable bidirectional mapping between source keys and
// tokens, tagged with the method that produced the tokens.
//
// For every key k used to build it, Key(Token(k)) == k, and no two keys share
// a token. A Dictionary is safe for concurrent use.
type Dictionary struct {
	keys          []string
	forward       map[string]string
	reverse       map[string]string
	method        Method
	deterministic bool
	fingerprint   string
}

// Build assigns each key a token by its zero-based position in keys and
// returns the resulting Dictionary. Order is significant: the same keys in a
// different order produce different tokens.
//
// Build fails with an *UnsafeKeyError if a key or generated token is unsafe,
// a *CollisionError if a key repeats or two keys produce the same token, and a
// *ConfigError if the options are invalid. No partial dictionary is returned.
func Build(keys []string, opts ...Option) (*Dictionary, error) {
	start := time.Now()
	cfg := newConfig(opts)
	d, err := build(keys, &cfg)
	emitDictionaryBuilt(context.Background(), cfg.method, len(keys), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GenerateDictionary is an alias for Build.
func GenerateDictionary(keys []string, opts ...Option) (*Dictionary, error) {
	return Build(keys, opts...)
}

func build(keys []string, cfg *config) (*Dictionary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &Dictionary{
		keys:          make([]string, 0, len(keys)),
		forward:       make(map[string]string, len(keys)),
		reverse:       make(map[string]string, len(keys)),
		method:        cfg.method,
		deterministic: cfg.method.Deterministic(),
	}

	for i, key := range keys {
		if err := checkKey("key", key); err != nil {
			return nil, err
		}
		if _, dup := d.forward[key]; dup {
			return nil, &CollisionError{Key: key, Duplicate: true}
		}

		base, err := generate(i, cfg)
		if err != nil {
			return nil, err
		}
		token := cfg.prefix + base
		if err := checkKey("token", token); err != nil {
			return nil, err
		}
		if existing, taken := d.reverse[token]; taken {
			return nil, &CollisionError{Key: key, Token: token, Existing: existing}
		}

		d.keys = append(d.keys, key)
		d.forward[key] = token
		d.reverse[token] = key
	}

	d.fingerprint = fingerprint(d.method, d.keys, d.forward)
	return d, nil
}

// Method returns the encoding method that produced the tokens.
func (d *Dictionary) Method() Method { return d.method }

// Deterministic reports whether rebuilding from the same keys and options
// reproduces this dictionary. False for MethodShort and MethodCustom.
func (d *Dictionary) Deterministic() bool { return d.deterministic }

// Fingerprint identifies the method and the ordered key/token pairs.
func (d *Dictionary) Fingerprint() string { return d.fingerprint }

// Len returns the number of keys.
func (d *Dictionary) Len() int { return len(d.keys) }

// Keys returns the source keys in build order.
func (d *Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Token returns the token assigned to key.
func (d *Dictionary) Token(key string) (string, bool) {
	t, ok := d.forward[key]
	return t, ok
}

// Key returns the source key for token.
func (d *Dictionary) Key(token string) (string, bool) {
	k, ok := d.reverse[token]
	return k, ok
}

// Forward returns a copy of the key -> token map.
func (d *Dictionary) Forward() map[string]string { return maps.Clone(d.forward) }

// Reverse returns a copy of the token -> key map.
func (d *Dictionary) Reverse() map[string]string { return maps.Clone(d.reverse) }

// Tokenize replaces the keys of v with their tokens.
func (d *Dictionary) Tokenize(v Value) (Value, error) {
	return Tokenize(v, d.forward)
}

// Detokenize replaces the tokens in v with their source keys.
func (d *Dictionary) Detokenize(v Value) (Value, error) {
	return Detokenize(v, d.reverse)
}
