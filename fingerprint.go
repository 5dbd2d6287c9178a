package keyswap

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// fingerprintLen is the number of hex characters kept from the digest.
const fingerprintLen = 16

// fingerprint hashes the method and the ordered key/token pairs with BLAKE2b-256.
// Each field is length-prefixed so ("ab","c") and ("a","bc") differ.
func fingerprint(method Method, keys []string, forward map[string]string) string {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes

	var lenBuf [binary.MaxVarintLen64]byte
	write := func(s string) {
		n := binary.PutUvarint(lenBuf[:], uint64(len(s)))
		h.Write(lenBuf[:n])
		h.Write([]byte(s))
	}

	write(string(method))
	for _, k := range keys {
		write(k)
		write(forward[k])
	}

	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}
