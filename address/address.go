// Package address derives the storage key under which a relayed packet
// is persisted. The key only depends on the packet's request, so two
// packets that answer the same request share a key
package address

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oasislabs/oracle-bridge/obi"
)

// KeyLength is the length of a hex encoded key
const KeyLength = 64

// Digest returns the Keccak-256 hash of the canonical encoding
func Digest(canonical []byte) [32]byte {
	return crypto.Keccak256Hash(canonical)
}

// Key returns the lowercase hex digest of the request's canonical
// encoding
func Key(req *obi.Request) string {
	digest := Digest(req.Encode())
	return hex.EncodeToString(digest[:])
}

// ValidKey returns true if key has the shape of a key returned by Key
func ValidKey(key string) bool {
	if len(key) != KeyLength {
		return false
	}

	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
