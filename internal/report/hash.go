package report

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// HashLen is the number of hex chars kept from a fingerprint.
const HashLen = 16

// ContentHash returns the xxhash64 of s as hex, truncated to hexLen chars.
func ContentHash(s string, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(s))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
