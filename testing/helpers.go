// Package testing provides fixtures and helpers for keyswap tests.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/keyswap"
)

// FixedTime is the instant returned by FixedClock, 1700000000000 ms after the epoch.
var FixedTime = time.UnixMilli(1700000000000)

// FixedClock returns a clock pinned to FixedTime so MethodShort tokens are reproducible.
func FixedClock() keyswap.Clock {
	return keyswap.ClockFunc(func() time.Time { return FixedTime })
}

// Address is a nested test type.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Account is a test type whose wire names match SampleDocument.
type Account struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Active  bool      `json:"active"`
	Home    Address   `json:"home"`
	Tags    []string  `json:"tags"`
	Friends []Account `json:"friends"`
}

// SampleKeys returns the wire names of Account in declaration order.
func SampleKeys() []string {
	return []string{"id", "name", "email", "active", "home", "street", "city", "tags", "friends"}
}

// SampleJSON is SampleDocument encoded as compact JSON.
const SampleJSON = `{"id":"u-1","name":"Ada","email":"ada@example.com","active":true,` +
	`"home":{"street":"12 St James's Square","city":"London"},"tags":["math","poetry"],` +
	`"friends":[{"id":"u-2","name":"Charles","score":9.5}]}`

// SampleDocument returns a fresh nested object. The "score" key is not in SampleKeys.
func SampleDocument() *keyswap.Object {
	home := keyswap.NewObject()
	home.Set("street", keyswap.String("12 St James's Square"))
	home.Set("city", keyswap.String("London"))

	friend := keyswap.NewObject()
	friend.Set("id", keyswap.String("u-2"))
	friend.Set("name", keyswap.String("Charles"))
	friend.Set("score", keyswap.Float(9.5))

	doc := keyswap.NewObject()
	doc.Set("id", keyswap.String("u-1"))
	doc.Set("name", keyswap.String("Ada"))
	doc.Set("email", keyswap.String("ada@example.com"))
	doc.Set("active", keyswap.Bool(true))
	doc.Set("home", home)
	doc.Set("tags", keyswap.Array{keyswap.String("math"), keyswap.String("poetry")})
	doc.Set("friends", keyswap.Array{friend})
	return doc
}

// PoisonedDocument returns SampleDocument with a "__proto__" key under home.
// Its offending path is root.home.__proto__.
func PoisonedDocument() *keyswap.Object {
	doc := SampleDocument()
	home, _ := doc.Get("home")
	home.(*keyswap.Object).Set("__proto__", keyswap.Bool(true))
	return doc
}

// MustBuild builds a dictionary or fails the test.
func MustBuild(tb testing.TB, keys []string, opts ...keyswap.Option) *keyswap.Dictionary {
	tb.Helper()
	dict, err := keyswap.Build(keys, opts...)
	require.NoError(tb, err)
	return dict
}

// AllMethods returns one option set per token method, each of which
// builds a valid dictionary for SampleKeys.
func AllMethods() map[keyswap.Method][]keyswap.Option {
	return map[keyswap.Method][]keyswap.Option{
		keyswap.MethodAlphabetic: {keyswap.WithMethod(keyswap.MethodAlphabetic)},
		keyswap.MethodNumeric:    {keyswap.WithMethod(keyswap.MethodNumeric), keyswap.WithPrefix("_")},
		keyswap.MethodPadded:     {keyswap.WithMethod(keyswap.MethodPadded), keyswap.WithPadding(3)},
		keyswap.MethodBase64:     {keyswap.WithMethod(keyswap.MethodBase64)},
		keyswap.MethodShort:      {keyswap.WithMethod(keyswap.MethodShort), keyswap.WithClock(FixedClock())},
		keyswap.MethodCustom: {
			keyswap.WithMethod(keyswap.MethodCustom),
			keyswap.WithCustom(func(i int) string { return "k" + string(rune('A'+i)) }),
		},
	}
}
