package puzzle

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Fingerprint computes a stable hex identifier for a puzzle:
// the SHA-256 of the difficulty level followed by the row-major
// cell values.  Storage layers use it as the primary key, so two
// identical puzzles at the same level always share an id.
func Fingerprint(level int, values []int) string {
	h := sha256.New()
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(level))
	h.Write(buf[:])
	for _, v := range values {
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
